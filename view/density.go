package view

import (
	"context"

	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/density"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// PopulationDensity parses the distribution of one concept. Malformed,
// empty or all zero payloads are replaced by the synthetic distribution.
func PopulationDensity(ctx context.Context, raw []byte, hint density.Hint, src rand.Source) (res model.DensitySeries) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("PopulationDensity recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
			res = density.Fallback(hint, nil)
		}
	}()

	doc := gjson.Result{}
	if gjson.ValidBytes(raw) {
		doc = gjson.ParseBytes(raw)
	} else {
		logger.Warn("invalid density payload", zap.String("hint", string(hint)), zap.Int("size", len(raw)))
	}

	res, fallback := density.Resolve(doc, hint, src)
	if fallback {
		logger.Info("use fallback density", zap.String("hint", string(hint)))
	}
	return res
}
