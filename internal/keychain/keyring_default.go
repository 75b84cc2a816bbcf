//go:build !windows

package keychain

import "github.com/zalando/go-keyring"

func readSecret(service, account string) (string, error) {
	return keyring.Get(service, account)
}
