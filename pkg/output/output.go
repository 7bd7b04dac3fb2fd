package output

import (
	"errors"

	"github.com/travigo/ssimconv/pkg/ssim"
)

var ErrOutputNotDirectory = errors.New("output path is not a directory")

// NopCarrierComplete provides an empty OnCarrierComplete for strategies that
// do not care about carrier boundaries.
type NopCarrierComplete struct{}

func (NopCarrierComplete) OnCarrierComplete(*ssim.Carrier) error { return nil }
