package closer

import (
	"log"
	"sync"
)

// Closer is Closer inferface
type Closer interface {
	Close()
}

// Manager handles closers
type Manager struct {
	sync.Mutex
	isClosed bool
	Names    []string
	Closers  []Closer
	wg       sync.WaitGroup
}

// NewManager returns a Manager
func NewManager() *Manager {
	cm := &Manager{
		Names:   []string{},
		Closers: []Closer{},
	}
	cm.wg.Add(1)
	return cm
}

// IsClosed returns it is closed or not
func (cm *Manager) IsClosed() bool {
	cm.Lock()
	defer cm.Unlock()

	return cm.isClosed
}

// RemoveAll removes all closers
func (cm *Manager) RemoveAll() {
	cm.Lock()
	defer cm.Unlock()

	cm.Names = []string{}
	cm.Closers = []Closer{}
}

// Add adds a closer with a name
func (cm *Manager) Add(Name string, c Closer) {
	cm.Lock()
	defer cm.Unlock()

	cm.Names = append(cm.Names, Name)
	cm.Closers = append(cm.Closers, c)
}

// CloseAll closes all closers in the reverse order of Add
func (cm *Manager) CloseAll() {
	cm.Lock()
	defer cm.Unlock()

	if !cm.isClosed {
		cm.isClosed = true
		for i := len(cm.Closers) - 1; i >= 0; i-- {
			log.Println("Close", cm.Names[i])
			cm.Closers[i].Close()
		}
		cm.wg.Done()
	}
}

// Wait waits close all
func (cm *Manager) Wait() {
	cm.wg.Wait()
}
