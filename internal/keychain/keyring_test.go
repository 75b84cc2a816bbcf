package keychain

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringStore_Contract(t *testing.T) {
	keyring.MockInit()
	storeContract(t, NewKeyringStore(), "credkeep-test")
}

func TestKeyringStore_SpecialCharacters(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringStore()
	secrets := []string{
		"p@ssw0rd!",
		"pass#123$",
		"密码123",
		"пароль",
		"パスワード",
		"pass word",
		"pass\ttab",
		strings.Repeat("a", 1000),
	}
	for i, pw := range secrets {
		d := GenericPassword("credkeep-test", "special"+string(rune('a'+i)))
		require.NoError(t, s.Add(d, []byte(pw)))
		it, err := s.Find(withReturn(d))
		require.NoError(t, err)
		assert.Equal(t, pw, string(it.Data))
	}
}

func TestKeyringStore_NullByteBehavior(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringStore()
	d := GenericPassword("credkeep-test", "null-byte")
	raw := "s\x00e\x00c\x00r\x00e\x00t\x00"
	require.NoError(t, s.Add(d, []byte(raw)))

	it, err := s.Find(withReturn(d))
	require.NoError(t, err)
	if runtime.GOOS == "windows" {
		assert.Equal(t, "secret", string(it.Data))
		return
	}
	assert.Equal(t, raw, string(it.Data))
}

func TestKeyringStatus(t *testing.T) {
	assert.Equal(t, StatusSuccess, keyringStatus(nil))
	assert.Equal(t, StatusItemNotFound, keyringStatus(keyring.ErrNotFound))
	assert.Equal(t, StatusDataTooLarge, keyringStatus(keyring.ErrSetDataTooBig))
	assert.Equal(t, StatusUnimplemented, keyringStatus(keyring.ErrUnsupportedPlatform))
	assert.Equal(t, StatusNotAvailable, keyringStatus(assert.AnError))
}
