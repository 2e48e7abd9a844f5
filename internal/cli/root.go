package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/lunchwheel/internal/appstate"
	"github.com/julianstephens/lunchwheel/internal/backup"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/storage"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

type Context struct {
	Config config.Config
	Store  storage.Provider

	// Clock overrides the configured timezone clock; tests pin it
	Clock session.Clock

	In  io.Reader
	Out io.Writer
}

// NewContext wires a context for the real terminal
func NewContext(cfg config.Config, store storage.Provider) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Now is the current time in the configured timezone
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now()
	}
	return time.Now().In(c.Config.Location())
}

// State wraps the store with the typed slot accessors
func (c *Context) State() *appstate.Store {
	return appstate.New(c.Store, c.Config.MaxRespins, c.Now)
}

// Session builds a controller over the store. rng may be nil for a random wheel.
func (c *Context) Session(rng wheel.RNG, spinDuration time.Duration) (*session.Controller, error) {
	return session.New(c.State(), session.ClockFunc(c.Now), session.Options{
		SpinDuration:    spinDuration,
		TransitionDelay: c.Config.TransitionDelay,
		RNG:             rng,
	})
}

// Printf writes to the command's output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a y/N question on the command's input
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.MemoryStore); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
