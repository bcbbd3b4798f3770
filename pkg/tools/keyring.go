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
package tools

import (
	"fmt"
	"os"

	"r00t2.io/gokwallet"
	"r00t2.io/gosecret"
)

const (
	walletApp    = "pwv"
	walletFolder = "Passwords"
	walletMap    = "pwv"
	secretPath   = "/Passwords/pwv"
)

var (
	getSecretFromKWallet        func(what string) (string, error) = kwalletSecret
	getSecretFromSecretsService func(what string) (string, error) = secretServiceSecret
)

// walletOpts copies the library defaults so they are never modified
func walletOpts() *gokwallet.RecurseOpts {
	opts := *gokwallet.DefaultRecurseOpts
	opts.AllWalletItems = true
	return &opts
}

// Gets a secret value from kwallet
func kwalletSecret(what string) (string, error) {
	if os.Getenv("USE_LIBSECRET") != "" {
		return "", fmt.Errorf("Skipping kwallet")
	}

	var (
		err error
		wm  *gokwallet.WalletManager
	)

	if wm, err = gokwallet.NewWalletManager(walletOpts(), walletApp); err != nil {
		return "", err
	}

	for _, v := range wm.Wallets {
		if f, ok := v.Folders[walletFolder]; ok {
			if m, ok := f.Maps[walletMap]; ok {
				if p, ok := m.Value[what]; ok {
					return p, nil
				}
			}
		}
	}
	return "", nil
}

// Gets a secret from libsecrets
func secretServiceSecret(what string) (string, error) {
	if os.Getenv("USE_KWALLET") != "" {
		return "", fmt.Errorf("Skipping secret service")
	}

	var (
		err           error
		service       *gosecret.Service
		unlockedItems []*gosecret.Item
	)

	if service, err = gosecret.NewService(); err != nil {
		return "", err
	}
	defer service.Close()

	service.Legacy = true
	if unlockedItems, _, err = service.SearchItems(map[string]string{
		"Path": secretPath,
	}); err != nil {
		return "", err
	}

	for _, item := range unlockedItems {
		attributes, _ := item.Attributes()
		if value, ok := attributes[what]; ok {
			return value, nil
		}
	}
	return "", nil
}
