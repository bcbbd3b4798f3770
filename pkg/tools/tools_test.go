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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-pinentry"
)

func noStore(t *testing.T) {
	okw := getSecretFromKWallet
	oss := getSecretFromSecretsService
	t.Cleanup(func() {
		getSecretFromKWallet = okw
		getSecretFromSecretsService = oss
	})
	getSecretFromKWallet = func(string) (string, error) {
		return "", fmt.Errorf("no wallet")
	}
	getSecretFromSecretsService = func(string) (string, error) {
		return "", fmt.Errorf("no secret service")
	}
}

func TestGetSecret(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		kwallet  func(string) (string, error)
		secrets  func(string) (string, error)
		expected string
	}{
		{
			name:     "from environment",
			env:      map[string]string{"PWV_TEST_SECRET": "from-env"},
			expected: "from-env",
		},
		{
			name: "from kwallet",
			kwallet: func(string) (string, error) {
				return "from-kwallet", nil
			},
			expected: "from-kwallet",
		},
		{
			name: "empty kwallet falls through to secret service",
			kwallet: func(string) (string, error) {
				return "", nil
			},
			secrets: func(string) (string, error) {
				return "from-secret-service", nil
			},
			expected: "from-secret-service",
		},
		{
			name:     "nothing stored",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			noStore(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			if test.kwallet != nil {
				getSecretFromKWallet = test.kwallet
			}
			if test.secrets != nil {
				getSecretFromSecretsService = test.secrets
			}
			assert.Equal(t, test.expected, GetSecret("PWV_TEST_SECRET"))
		})
	}
}

func pinentryReplying(getpin ...string) func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
	return func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
		return pinentry.NewClient(append(options, pinentry.WithProcess(&fakePinentry{getpin: getpin}))...)
	}
}

func noPinentry(options ...pinentry.ClientOption) (*pinentry.Client, error) {
	return nil, fmt.Errorf("exec: \"pinentry\": executable file not found in $PATH")
}

func TestGetPassword(t *testing.T) {
	tests := []struct {
		name             string
		env              string
		expectedResult   string
		expectedErr      error
		mockClient       func(options ...pinentry.ClientOption) (c *pinentry.Client, err error)
		mockReadPassword func(prompt string) ([]byte, error)
	}{
		{
			name:           "password from environment",
			env:            "from-env",
			expectedResult: "from-env",
		},
		{
			name:        "cancelled context",
			expectedErr: ErrCancelled,
			mockClient:  pinentryReplying("ERR 83886179 Operation cancelled <Pinentry>"),
		},
		{
			name:        "pinentry: no password provided",
			expectedErr: ErrNoPassword,
			mockClient:  pinentryReplying("OK"),
		},
		{
			name:           "pinentry: success",
			expectedResult: "password",
			mockClient:     pinentryReplying("D password", "OK"),
		},
		{
			name:           "pinentry: surrounding spaces are kept",
			expectedResult: " hunter2 ",
			mockClient:     pinentryReplying("D  hunter2 ", "OK"),
		},
		{
			name:        "no pinentry binary",
			expectedErr: fmt.Errorf("liner: function not supported in this terminal"),
			mockClient:  noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return nil, errors.New("liner: function not supported in this terminal")
			},
		},
		{
			name:        "liner: no password provided",
			expectedErr: ErrNoPassword,
			mockClient:  noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte("\n"), nil
			},
		},
		{
			name:           "liner: surrounding spaces are kept",
			expectedResult: " hunter2 ",
			mockClient:     noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte(" hunter2 "), nil
			},
		},
		{
			name:           "liner: trailing newline removed",
			expectedResult: "password",
			mockClient:     noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte("password\r\n"), nil
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			noStore(t)
			ope := GetPinentry
			orp := readPassword
			defer func() {
				GetPinentry = ope
				readPassword = orp
			}()
			t.Setenv(PasswordEnv, test.env)
			GetPinentry = func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
				if test.mockClient == nil {
					t.Fatal("pinentry should not be called")
				}
				return test.mockClient(options...)
			}
			readPassword = func(prompt string) ([]byte, error) {
				if test.mockReadPassword == nil {
					t.Fatal("stdin should not be read")
				}
				return test.mockReadPassword(prompt)
			}

			actualResult, actualErr := GetPassword("pwv", "Please enter the vault password", "Password: ")
			if test.expectedErr != nil {
				assert.EqualError(t, actualErr, test.expectedErr.Error())
				assert.Nil(t, actualResult)
				return
			}
			assert.NoError(t, actualErr)
			assert.Equal(t, test.expectedResult, string(actualResult))
		})
	}
}

func TestGetPasswordPinentrySession(t *testing.T) {
	noStore(t)
	t.Setenv(PasswordEnv, "")
	ope := GetPinentry
	defer func() {
		GetPinentry = ope
	}()

	process := &fakePinentry{getpin: []string{"D password", "OK"}}
	GetPinentry = func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
		return pinentry.NewClient(append(options, pinentry.WithProcess(process))...)
	}

	password, err := GetPassword("pwv", "Please enter the vault password", "Password:")
	assert.NoError(t, err)
	assert.Equal(t, "password", string(password))
	assert.Contains(t, process.commands, "SETTITLE pwv")
	assert.Contains(t, process.commands, "SETPROMPT Password:")
	assert.Contains(t, process.commands, "GETPIN")
	assert.Equal(t, "BYE", process.commands[len(process.commands)-1])
}
