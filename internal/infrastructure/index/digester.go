package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// Digester implements ports.PackageDigester.
type Digester struct{}

// NewDigester creates a digester.
func NewDigester() *Digester {
	return &Digester{}
}

// DigestPackage returns "sha256:<hex>" over the JSON encoding of info.
// encoding/json sorts map keys, so equal entries give equal digests.
func (d *Digester) DigestPackage(info *entities.PackageInfo) (string, error) {
	if info == nil {
		return "", fmt.Errorf("cannot digest nil package")
	}
	data, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode package %s/%s: %w", info.Name, info.Version, err)
	}
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
