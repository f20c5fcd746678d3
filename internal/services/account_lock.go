package services

import "sync"

// accountLocks serializes rule evaluation and ledger writes per account.
// The event path (transaction creation) and the scheduled path (daily tick)
// both take the account's lock before evaluating, so concurrent writes to
// one account queue up while other accounts proceed independently.
var accountLocks = newAccountLocker()

type accountLocker struct {
	locks sync.Map // accountID -> *sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{}
}

// Lock acquires the mutex for the given account and returns its unlock func.
func (l *accountLocker) Lock(accountID uint) func() {
	v, _ := l.locks.LoadOrStore(accountID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
