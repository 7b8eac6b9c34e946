package kvdb

import (
	"sync"

	"github.com/pkg/errors"
)

// KVParameter structure for kv instance parameters
type KVParameter struct {
	DBPath                string
	KVEngineType          string
	MemCacheSize          int
	FileHandlersCacheSize int
}

const (
	KVEngineTypeLDB    = "leveldb"
	KVEngineTypeBadger = "badger"
)

var (
	servsMu  sync.RWMutex
	services = make(map[string]NewStorageFunc)
)

type NewStorageFunc func(*KVParameter) (Database, error)

func Register(name string, f NewStorageFunc) {
	servsMu.Lock()
	defer servsMu.Unlock()

	if f == nil {
		panic("storage: Register new func is nil")
	}
	if _, dup := services[name]; dup {
		panic("storage: Register called twice for func " + name)
	}
	services[name] = f
}

func CreateKVInstance(kvParam *KVParameter) (Database, error) {
	servsMu.RLock()
	defer servsMu.RUnlock()

	if f, ok := services[kvParam.KVEngineType]; ok {
		instance, err := f(kvParam)
		if err != nil {
			return nil, errors.Wrapf(err, "get kvInstance fail. engine:%s path:%s",
				kvParam.KVEngineType, kvParam.DBPath)
		}
		return instance, nil
	}

	return nil, errors.Errorf("get kvInstance fail. engine %s not registered", kvParam.KVEngineType)
}

// GetDBPath return the value of DBPath
func (param *KVParameter) GetDBPath() string {
	return param.DBPath
}

// GetKVEngineType return the value of KVEngineType
func (param *KVParameter) GetKVEngineType() string {
	return param.KVEngineType
}

// GetMemCacheSize return the value of MemCacheSize
func (param *KVParameter) GetMemCacheSize() int {
	return param.MemCacheSize
}

// GetFileHandlersCacheSize return the value of FileHandlersCacheSize
func (param *KVParameter) GetFileHandlersCacheSize() int {
	return param.FileHandlersCacheSize
}
