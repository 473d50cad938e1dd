package storage

import (
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/aiorigin/cidutil"
)

// MemCAS is an in-process CAS. The zero value is ready to use.
type MemCAS struct {
	mu   sync.RWMutex
	objs map[string][]byte
}

var _ CAS = (*MemCAS)(nil)

func NewMemCAS() *MemCAS { return &MemCAS{} }

func (m *MemCAS) Put(bytes []byte) (cid.Cid, error) {
	id, err := cidutil.Sum(bytes)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objs == nil {
		m.objs = make(map[string][]byte)
	}
	if existing, ok := m.objs[id.KeyString()]; ok {
		if string(existing) != string(bytes) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.objs[id.KeyString()] = append([]byte(nil), bytes...)
	return id, nil
}

func (m *MemCAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	b, ok := m.objs[id.KeyString()]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemCAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objs[id.KeyString()]
	return ok
}
