/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notapipeline/pwv/pkg/config"
	"github.com/notapipeline/pwv/pkg/search"
	"github.com/notapipeline/pwv/pkg/types"
)

var clientCmd types.ClientCmd = types.ClientCmd{}

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pwv [flags] [search terms...]",
	Short: "OpenSSL encrypted password vault client",
	Long: `
OpenSSL encrypted password vault client

Reads a password vault encrypted with

	openssl enc -aes-256-cbc -a -md md5

from a local cache, refreshing it from the configured url once it is older
than --max-age, and searches the entry titles for the given terms.

Every term must appear in the title, ignoring case. Matches are listed in
vault order. When more than one entry matches you are asked for the number
of the entry to use and its password is copied to the clipboard.

The vault password is read from PWV_PASSWORD, KDE wallet or the secret
service when stored there, otherwise you are asked for it using GPG pinentry
if available, falling back to the terminal.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			config.ConfigPath = func() (string, error) {
				return cfgFile, nil
			}
		}
		switch clientCmd.Output {
		case "", types.OutputTable, types.OutputJSON:
		default:
			return fmt.Errorf("unknown output format %q", clientCmd.Output)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		l := newLogger(cmd.ErrOrStderr())
		ctx := l.WithContext(cmd.Context())

		encoded, err := readVault(ctx, c, l)
		if err != nil {
			return err
		}

		library, err := unlock(encoded, c.VerifyMagic)
		if err != nil {
			return err
		}
		l.Debug().Int("entries", len(library.Entries())).Msg("vault opened")

		matches := search.Filter(library, search.Lowercase(args))
		if len(matches) == 0 {
			return ErrNoMatch
		}

		if err = printMatches(cmd.OutOrStdout(), matches, clientCmd.Output); err != nil {
			return err
		}
		if clientCmd.List {
			return nil
		}

		entry, err := choose(matches)
		if err != nil {
			return err
		}

		if err = copyToClipboard(entry.Password, c.ClearAfter); err != nil {
			return err
		}
		l.Info().Str("title", entry.Title).Msg("password copied to clipboard")
		return nil
	},
}

// choose asks which entry to use when there is more than one match
func choose(matches []types.PasswordEntry) (types.PasswordEntry, error) {
	if len(matches) == 1 {
		return matches[0], nil
	}

	line, err := readLine(fmt.Sprintf("Select entry [1-%d]: ", len(matches)))
	if err != nil {
		return types.PasswordEntry{}, err
	}

	index, err := strconv.Atoi(strings.TrimSpace(string(line)))
	if err != nil {
		return types.PasswordEntry{}, fmt.Errorf("invalid selection %q", strings.TrimSpace(string(line)))
	}
	return search.Select(matches, index)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error: %s", err)
	}
}

func init() {
	// These are consistent across all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pwv/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&clientCmd.URL, "url", "", "url the vault is downloaded from")
	rootCmd.PersistentFlags().StringVar(&clientCmd.CachePath, "cache", "", "path of the cached vault (default is $XDG_CACHE_HOME/pwv/passwords.txt)")
	rootCmd.PersistentFlags().DurationVar(&clientCmd.MaxAge, "max-age", 0, "refresh the cached vault once it is older than this (default 168h)")
	rootCmd.PersistentFlags().BoolVar(&clientCmd.VerifyMagic, "verify-magic", false, "reject vaults that do not start with the openssl \"Salted__\" marker")
	rootCmd.PersistentFlags().DurationVar(&clientCmd.ClearAfter, "clear-after", 0, "clear the clipboard after this long (default never)")
	rootCmd.PersistentFlags().BoolVar(&clientCmd.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&clientCmd.Quiet, "quiet", false, "disable all logging")

	// these are for searching
	rootCmd.Flags().StringVarP(&clientCmd.File, "file", "f", "", "read the vault from this file instead of the cache")
	rootCmd.Flags().BoolVarP(&clientCmd.Refresh, "refresh", "r", false, "download the vault even if the cache is fresh")
	rootCmd.Flags().BoolVarP(&clientCmd.List, "list", "l", false, "only list matching entries")
	rootCmd.Flags().StringVarP(&clientCmd.Output, "output", "o", types.OutputTable, "output format, one of table or json")
}
