package config

import (
	"fmt"
	"strings"
)

type Storage struct {
	Driver StorageDriver `env:"STORAGE_DRIVER" envDefault:"FILE"`
	Key    string        `env:"STORAGE_KEY" envDefault:"product-storage"`

	FileDir    string `env:"STORAGE_FILE_DIR" envDefault:"./data"`
	SQLitePath string `env:"STORAGE_SQLITE_PATH" envDefault:"./data/slots.db"`
}

// StorageDriver selects the backend holding the persisted product slot.
type StorageDriver uint8

const (
	StorageDriverMemory StorageDriver = iota
	StorageDriverFile
	StorageDriverSQLite
	StorageDriverRedis
	StorageDriverPostgres
)

var storageDriverNames = []string{"MEMORY", "FILE", "SQLITE", "REDIS", "POSTGRES"}

// String returns the string representation of the storage driver.
func (d StorageDriver) String() string {
	if int(d) >= len(storageDriverNames) {
		return "UNKNOWN"
	}
	return storageDriverNames[d]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StorageDriver) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for i, n := range storageDriverNames {
		if n == name {
			*d = StorageDriver(i)
			return nil
		}
	}
	return fmt.Errorf("unknown storage driver: %s", text)
}

func (d StorageDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
