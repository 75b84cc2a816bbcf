package keychain

import (
	stderrors "errors"

	"github.com/zalando/go-keyring"
)

// KeyringStore 通过 zalando/go-keyring 访问 OS keyring：
// macOS Keychain、Linux Secret Service（D-Bus）、Windows Credential Manager。
// go-keyring 的 Set 本身是 upsert，因此 Add/Update 先探测以报告 DuplicateItem / ItemNotFound。
// 探测与 Set 之间不加锁：并发 Add 同一 key 可能覆盖而非报告 DuplicateItem，这是接受的。
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (k *KeyringStore) Add(d Descriptor, secret []byte) error {
	if err := validate("add", d); err != nil {
		return err
	}
	_, err := readSecret(d.Service, d.Account)
	switch {
	case err == nil:
		return newStatusError("add", StatusDuplicateItem, nil)
	case !stderrors.Is(err, keyring.ErrNotFound):
		return newStatusError("add", keyringStatus(err), err)
	}
	if err := keyring.Set(d.Service, d.Account, string(secret)); err != nil {
		return newStatusError("add", keyringStatus(err), err)
	}
	return nil
}

func (k *KeyringStore) Update(d Descriptor, secret []byte) error {
	if err := validate("update", d); err != nil {
		return err
	}
	if _, err := readSecret(d.Service, d.Account); err != nil {
		return newStatusError("update", keyringStatus(err), err)
	}
	if err := keyring.Set(d.Service, d.Account, string(secret)); err != nil {
		return newStatusError("update", keyringStatus(err), err)
	}
	return nil
}

func (k *KeyringStore) Find(d Descriptor) (Item, error) {
	if err := validate("find", d); err != nil {
		return Item{}, err
	}
	val, err := readSecret(d.Service, d.Account)
	if err != nil {
		return Item{}, newStatusError("find", keyringStatus(err), err)
	}
	// go-keyring 不返回属性；账户名即查询键。
	return itemFor(d, d.Account, "", []byte(val)), nil
}

func (k *KeyringStore) Remove(d Descriptor) error {
	if err := validate("remove", d); err != nil {
		return err
	}
	if err := keyring.Delete(d.Service, d.Account); err != nil {
		return newStatusError("remove", keyringStatus(err), err)
	}
	return nil
}

func keyringStatus(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case stderrors.Is(err, keyring.ErrNotFound):
		return StatusItemNotFound
	case stderrors.Is(err, keyring.ErrSetDataTooBig):
		return StatusDataTooLarge
	case stderrors.Is(err, keyring.ErrUnsupportedPlatform):
		return StatusUnimplemented
	default:
		return StatusNotAvailable
	}
}
