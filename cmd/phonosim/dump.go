package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"phonosim/internal/corpus"
	"phonosim/internal/distcache"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <output.mp>",
	Short: "Scan the corpora and write their character distributions to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached character distributions",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	dists, sizes, err := s.distributions(distSource{refresh: true})
	if err != nil {
		return err
	}
	dir := s.cfg.Resolve(s.cfg.Data.Corpora)
	prefix := s.cfg.Data.CorpusPrefix
	files, err := corpus.List(dir, prefix)
	if err != nil {
		return err
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	key, err := distcache.Fingerprint(prefix, paths)
	if err != nil {
		return err
	}
	payload, err := distcache.FromDists(key, prefix, dists, sizes)
	if err != nil {
		return err
	}
	out := args[0]
	if err := distcache.WriteFile(out, payload); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d distributions to %s\n", len(payload.Langs), filepath.Clean(out))
	return err
}

func runClean(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	cache, err := distcache.Open(s.cfg.Resolve(s.cfg.Cache.Dir), cacheApp)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
	return err
}
