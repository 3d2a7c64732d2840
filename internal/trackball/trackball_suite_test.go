package trackball_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTrackball(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trackball Suite")
}
