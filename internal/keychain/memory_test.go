package keychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract 对任意 Store 实现跑同一组平台语义检查。
func storeContract(t *testing.T, s Store, service string) {
	t.Helper()
	d := GenericPassword(service, "alice")

	_, err := s.Find(withReturn(d))
	assert.Equal(t, StatusItemNotFound, StatusOf(err), "find before add")

	assert.Equal(t, StatusItemNotFound, StatusOf(s.Update(d, []byte("x"))), "update before add")

	require.NoError(t, s.Add(d, []byte("s3cret")))
	assert.Equal(t, StatusDuplicateItem, StatusOf(s.Add(d, []byte("other"))))

	it, err := s.Find(withReturn(d))
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), it.Data)
	assert.Equal(t, "alice", it.Attributes[AttrAccount])
	assert.Equal(t, service, it.Attributes[AttrService])
	assert.Equal(t, string(ClassGenericPassword), it.Attributes[AttrClass])

	require.NoError(t, s.Update(d, []byte("rotated")))
	it, err = s.Find(withReturn(d))
	require.NoError(t, err)
	assert.Equal(t, []byte("rotated"), it.Data)

	require.NoError(t, s.Remove(d))
	assert.Equal(t, StatusItemNotFound, StatusOf(s.Remove(d)))
}

func withReturn(d Descriptor) Descriptor {
	d.ReturnData = true
	d.ReturnAttributes = true
	d.MatchLimitOne = true
	return d
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore(), "credkeep-test")
}

func TestMemoryStore_ReturnFlags(t *testing.T) {
	m := NewMemoryStore()
	d := GenericPassword("svc", "bob")
	require.NoError(t, m.Add(d, []byte("pw")))

	it, err := m.Find(d)
	require.NoError(t, err)
	assert.Nil(t, it.Data)
	assert.Nil(t, it.Attributes)

	d.ReturnData = true
	it, err = m.Find(d)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), it.Data)
	assert.Nil(t, it.Attributes)
}

func TestMemoryStore_Isolation(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Add(GenericPassword("svc", "a"), []byte("x")))
	require.NoError(t, m.Add(GenericPassword("svc", "b"), []byte("y")))
	require.NoError(t, m.Add(GenericPassword("other", "a"), []byte("z")))
	assert.Equal(t, 3, m.Len())

	it, err := m.Find(withReturn(GenericPassword("svc", "a")))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), it.Data)
}

func TestMemoryStore_CopiesSecret(t *testing.T) {
	m := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, m.Add(GenericPassword("svc", "a"), buf))
	buf[0] = 'X'

	it, err := m.Find(withReturn(GenericPassword("svc", "a")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), it.Data)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
		want Status
	}{
		{"ok", GenericPassword("svc", "acct"), StatusSuccess},
		{"empty service", GenericPassword("", "acct"), StatusParam},
		{"empty account", GenericPassword("svc", ""), StatusParam},
		{"other class", Descriptor{Class: "inet", Service: "svc", Account: "acct"}, StatusUnimplemented},
	}
	m := NewMemoryStore()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(m.Add(tc.d, []byte("v"))))
		})
	}
}
