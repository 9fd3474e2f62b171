package prompt

import (
	"fmt"
	"os"

	"dbpd/internal/models"
	"dbpd/internal/prompt/interfaces"
	"dbpd/internal/providers"

	json "github.com/goccy/go-json"
)

// StateFileManager moves the engine state envelope between memory and disk.
// Writes are atomic: marshal, compress, write to a temp file, fsync, rename.
type StateFileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewStateFileManager(compressor interfaces.CompressorInterface, logger providers.Logger) *StateFileManager {
	return &StateFileManager{
		compressor: compressor,
		logger:     logger,
	}
}

func (f *StateFileManager) Save(fileName string, state models.PromptState) error {
	state.Version = models.StateVersion

	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *StateFileManager) Close() {
	f.compressor.Close()
}

// Load reads the state envelope. A missing file is an empty state. Files
// written before compression was introduced are plain JSON with no version
// field; both still load.
func (f *StateFileManager) Load(fileName string) (models.PromptState, error) {
	var state models.PromptState

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}

	plain, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeEngine, "State file not compressed, trying legacy layout")
		plain = data
	}

	if err := json.Unmarshal(plain, &state); err != nil {
		return models.PromptState{}, fmt.Errorf("state file unreadable: %w", err)
	}

	if state.Version > models.StateVersion {
		return models.PromptState{}, fmt.Errorf("state file version %d is newer than supported %d", state.Version, models.StateVersion)
	}
	if state.Version == 0 && (state.Activity != nil || state.History != nil) {
		f.logger.Warnf(providers.TypeEngine, "Migrated legacy state file; next save upgrades it")
	}

	return state, nil
}
