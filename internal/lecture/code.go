package lecture

import (
	"math/rand"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

// CodeGenerator yields six-digit session codes.
type CodeGenerator interface {
	Next() int
}

// MathRandCodes draws codes uniformly from [100000, 999999] using math/rand.
// Codes only gate attendance marking, so crypto/rand is not required.
type MathRandCodes struct{}

func (MathRandCodes) Next() int {
	return model.MinCode + rand.Intn(model.MaxCode-model.MinCode+1)
}
