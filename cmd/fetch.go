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
	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the vault into the cache",
	Long: `Downloads the vault from the configured url and replaces the cached
copy, regardless of its age. Nothing is decrypted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		l := newLogger(cmd.ErrOrStderr())
		ctx := l.WithContext(cmd.Context())
		if _, err = newLoader(c, l).Refresh(ctx); err != nil {
			return err
		}
		l.Info().Str("path", c.CachePath).Msg("vault cached")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
