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
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/notapipeline/pwv/pkg/vault"
)

var sealOut string

// sealCmd represents the seal command
var sealCmd = &cobra.Command{
	Use:   "seal <library.json>",
	Short: "Encrypt a password library into a vault",
	Long: `Checks that a plaintext JSON password library has the expected
format and encrypts it with a new random salt. The result can be read by pwv
and decrypted with

	openssl enc -d -aes-256-cbc -a -md md5

The vault is written to stdout unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(library)

		password, err := getPassword()
		if err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}
		buf := memguard.NewBufferFromBytes(password)
		defer buf.Destroy()

		sealed, err := vault.Seal(library, buf.Bytes())
		if err != nil {
			return err
		}

		if sealOut == "" {
			_, err = cmd.OutOrStdout().Write(sealed)
			return err
		}
		if err = os.WriteFile(sealOut, sealed, 0600); err != nil {
			return err
		}
		newLogger(cmd.ErrOrStderr()).Info().Str("path", sealOut).Msg("vault written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sealCmd)
	sealCmd.Flags().StringVarP(&sealOut, "out", "O", "", "write the vault to this file")
}
