package droplet

import "sync"

// mockHandle pretends every droplet is missing until downloaded once,
// downloads always succeed and touch nothing on disk
type mockHandle struct {
	lock    sync.Locker
	sha1    string
	present bool
}

func NewMockHandle(sha1 string) *mockHandle {
	return &mockHandle{
		lock: &sync.Mutex{},
		sha1: sha1,
	}
}

func (m *mockHandle) SHA1() string {
	return m.sha1
}

func (m *mockHandle) Path() string {
	return "/dev/null"
}

func (m *mockHandle) Exists() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.present
}

func (m *mockHandle) Download(uri string, callback func(error)) {
	go func() {
		m.lock.Lock()
		m.present = true
		m.lock.Unlock()
		callback(nil)
	}()
}
