//
// Copyright (c) 2026 The webwrap Authors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package keylock

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	flock "github.com/theckman/go-flock"
)

const flockRetryDelay = 100 * time.Millisecond

// Locks maintains mutexes on a per-key basis. Within the process a key is
// guarded by a sync.Mutex; across processes by a lock file in Dir.
type Locks struct {
	// Dir is where lock files are created. If empty, only in-process
	// locking is done.
	Dir string

	mu    sync.Mutex
	byKey map[string]*keyLock
}

type keyLock struct {
	ch chan struct{}
	fl *flock.Flock
}

func New(dir string) *Locks {
	return &Locks{Dir: dir, byKey: map[string]*keyLock{}}
}

// getLockByKey returns the lock for the key, creating it the first time
// the key is seen.
func (l *Locks) getLockByKey(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.byKey == nil {
		l.byKey = map[string]*keyLock{}
	}
	if kl, ok := l.byKey[key]; ok {
		return kl
	}
	kl := &keyLock{ch: make(chan struct{}, 1)}
	if l.Dir != "" {
		kl.fl = flock.NewFlock(FileName(l.Dir, key))
	}
	l.byKey[key] = kl
	return kl
}

// FileName returns the lock file used for the key.
func FileName(dir, key string) string {
	return filepath.Join(dir, key+".lock")
}

// Lock blocks until the key is held by the caller or ctx is done. The
// returned function releases the key and must be called exactly once.
func (l *Locks) Lock(ctx context.Context, key string) (func(), error) {
	kl := l.getLockByKey(key)

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Trace(ctx.Err())
	}

	if kl.fl != nil {
		if err := os.MkdirAll(l.Dir, 0755); err != nil {
			<-kl.ch
			return nil, errors.Trace(err)
		}
		if err := lockFile(ctx, kl.fl); err != nil {
			<-kl.ch
			return nil, errors.Annotatef(err, "locking %s", kl.fl.Path())
		}
	}
	glog.V(1).Infof("%s: locked", key)

	var once sync.Once
	return func() {
		once.Do(func() {
			if kl.fl != nil {
				if err := kl.fl.Unlock(); err != nil {
					glog.Errorf("%s: failed to unlock %s: %v", key, kl.fl.Path(), err)
				}
			}
			glog.V(1).Infof("%s: unlocked", key)
			<-kl.ch
		})
	}, nil
}

func lockFile(ctx context.Context, fl *flock.Flock) error {
	for {
		locked, err := fl.TryLock()
		if err != nil {
			return errors.Trace(err)
		}
		if locked {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Trace(ctx.Err())
		case <-time.After(flockRetryDelay):
		}
	}
}
