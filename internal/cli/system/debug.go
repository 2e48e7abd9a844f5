package system

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/logger"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show store path."`
	Keys     *DebugKeysCmd     `cmd:"" help:"List stored keys."`
	Dump     *DebugDumpCmd     `cmd:"" help:"Dump a stored value."`
	ResetKey *DebugResetKeyCmd `cmd:"" help:"Delete a stored value so it is rebuilt with defaults."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.Config.Path,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Key to dump, e.g. lunch-categories."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("key not found: %s", cmd.Key)
	}

	// Pretty-print JSON values; anything else (or malformed JSON) is shown verbatim
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		ctx.Println(raw)
		return nil
	}
	ctx.Println(buf.String())
	return nil
}

type DebugResetKeyCmd struct {
	Key string `arg:"" help:"Key to delete."`
}

func (cmd *DebugResetKeyCmd) Run(ctx *cli.Context) error {
	if !slices.Contains(constants.KnownKeys, cmd.Key) {
		return fmt.Errorf("unknown key %q (known keys: %v)", cmd.Key, constants.KnownKeys)
	}
	if err := ctx.Store.Delete(cmd.Key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", cmd.Key, err)
	}
	logger.Info("Key reset", "key", cmd.Key)
	ctx.Printf("✓ Reset %s\n", cmd.Key)
	return nil
}
