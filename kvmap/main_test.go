package kvmap

import (
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

func TestMain(m *testing.M) {
	logger.New("NOOP")
	os.Exit(m.Run())
}
