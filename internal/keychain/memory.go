package keychain

import "sync"

type memKey struct {
	service string
	account string
}

type memEntry struct {
	label string
	data  []byte
}

// MemoryStore 是进程内存实现，行为与平台存储一致（重复/不存在均返回对应状态）。
// 用于测试与 memory 后端；进程退出即丢失。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[memKey]memEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[memKey]memEntry{}}
}

func (m *MemoryStore) Add(d Descriptor, secret []byte) error {
	if err := validate("add", d); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey{d.Service, d.Account}
	if _, ok := m.entries[k]; ok {
		return newStatusError("add", StatusDuplicateItem, nil)
	}
	m.entries[k] = memEntry{label: label(d.Service, d.Account), data: clone(secret)}
	return nil
}

func (m *MemoryStore) Update(d Descriptor, secret []byte) error {
	if err := validate("update", d); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey{d.Service, d.Account}
	e, ok := m.entries[k]
	if !ok {
		return newStatusError("update", StatusItemNotFound, nil)
	}
	e.data = clone(secret)
	m.entries[k] = e
	return nil
}

func (m *MemoryStore) Find(d Descriptor) (Item, error) {
	if err := validate("find", d); err != nil {
		return Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[memKey{d.Service, d.Account}]
	if !ok {
		return Item{}, newStatusError("find", StatusItemNotFound, nil)
	}
	return itemFor(d, d.Account, e.label, clone(e.data)), nil
}

func (m *MemoryStore) Remove(d Descriptor) error {
	if err := validate("remove", d); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey{d.Service, d.Account}
	if _, ok := m.entries[k]; !ok {
		return newStatusError("remove", StatusItemNotFound, nil)
	}
	delete(m.entries, k)
	return nil
}

// Len 返回条目数。
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
