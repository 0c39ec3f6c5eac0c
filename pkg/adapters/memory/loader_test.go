package memory_test

import (
	"testing"

	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/pkg/adapters/memory"
	contract "github.com/aretw0/strata/pkg/ports/tests"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"pair":   "pieces: [{id: a}, {id: b}]\nsolution: [a, b]\n",
		"single": "pieces: [{id: a}]\nsolution: [a]\n",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	contract.PuzzleLoaderContractTest(t, memory.NewLoader(data), bytesData)
}

func TestDefaultLoader_Contract(t *testing.T) {
	contract.PuzzleLoaderContractTest(t, memory.NewDefaultLoader(), map[string][]byte{
		config.DefaultName: config.DefaultYAML(),
	})
}
