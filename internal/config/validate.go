package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateParser(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if len(c.Paths.SourceDirs) == 0 {
		return errors.New("paths.source_dirs must include at least one directory")
	}
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	for _, src := range c.Paths.SourceDirs {
		if src == c.Paths.LibraryDir {
			return fmt.Errorf("paths.library_dir %q must not also be a source directory", src)
		}
	}
	return nil
}

func (c *Config) validateParser() error {
	for i, rule := range c.Parser.Editions {
		if strings.TrimSpace(rule.Search) == "" {
			return fmt.Errorf("parser.editions[%d].search must be set", i)
		}
		if _, err := regexp.Compile(rule.Search); err != nil {
			return fmt.Errorf("parser.editions[%d].search: %w", i, err)
		}
		if strings.TrimSpace(rule.Replace) == "" {
			return fmt.Errorf("parser.editions[%d].replace must be set", i)
		}
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.MinSizeMB < 0 {
		return errors.New("scan.min_size_mb must be >= 0")
	}
	return nil
}
