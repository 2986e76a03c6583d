// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/googlecloudplatform/randpop/cfg"
	"github.com/googlecloudplatform/randpop/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd accepts the function that populates the tree once the config
// has been parsed and validated.
func NewRootCmd(runFn func(cfg.Config) error) (*cobra.Command, error) {
	var (
		configObj cfg.Config
		cfgFile   string
		v         = viper.New()
	)
	rootCmd := &cobra.Command{
		Use:   "randpop [flags]",
		Short: "Populate a directory tree with files and subdirectories",
		Long: `randpop creates a synthetic directory tree for filesystem benchmarking.
A fixed number of workers each fill their own subtree under the root with a
regular fan-out of empty files and subdirectories until the requested number
of entries is reached.`,
		Version:       common.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := populateConfig(v, cfgFile, &configObj); err != nil {
				return err
			}
			if err := cfg.ValidateConfig(&configObj); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runFn(configObj)
		},
	}
	rootCmd.Flags().StringVarP(&cfgFile, "config-file", "", "", "Path to a YAML config file. Flags set on the command line take precedence over it.")
	if err := cfg.BindFlags(v, rootCmd.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}
	return rootCmd, nil
}

// populateConfig merges the config file, if any, underneath the bound flags
// and decodes the result.
func populateConfig(v *viper.Viper, cfgFile string, c *cfg.Config) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error while reading the config file: %w", err)
		}
	}
	err := v.Unmarshal(c, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
		decoderConfig.ErrorUnused = true
	})
	if err != nil {
		return fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return nil
}

func Execute() {
	rootCmd, err := NewRootCmd(func(c cfg.Config) error {
		return runPopulation(c, os.Stdout)
	})
	if err == nil {
		err = rootCmd.Execute()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
