package interfaces

import "techpulse/internal/models"

// SnapshotPersisterInterface reads and writes the single snapshot file.
// Load reports found=false when no snapshot has been written yet.
type SnapshotPersisterInterface interface {
	Save(snapshot models.Snapshot) error
	Load() (snapshot models.Snapshot, found bool, err error)
}

// SnapshotStoreInterface is the part of the state store the scheduler drives.
type SnapshotStoreInterface interface {
	Load() error
	Flush() error
	Dirty() bool
}
