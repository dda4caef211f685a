package writer

import (
	"bytes"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// PictureResult reports the outcome of CopyPictures.
type PictureResult struct {
	// Detected is the number of pictures found in the source sheet.
	Detected int
	// Copied counts pictures present in the destination afterwards,
	// whether added now or already carried over by the file copy.
	Copied int
	// Failed counts pictures that could not be copied.
	Failed int
}

// CopyPictures re-creates every picture of the source sheet in the
// destination sheet with the same anchor cell, bytes and graphic options.
// A picture already present at that cell with identical bytes is left
// alone. Each failure is logged and skipped.
func CopyPictures(src, dst *excelize.File, srcSheet, dstSheet string, log *zap.Logger) PictureResult {
	log = logger.OrNop(log)
	var res PictureResult

	cells, err := src.GetPictureCells(srcSheet)
	if err != nil {
		log.Warn("cannot list source pictures", zap.String("sheet", srcSheet), zap.Error(err))
		return res
	}

	for _, cell := range cells {
		pics, err := src.GetPictures(srcSheet, cell)
		if err != nil {
			log.Warn("cannot read source pictures", zap.String("cell", cell), zap.Error(err))
			continue
		}
		res.Detected += len(pics)

		existing, err := dst.GetPictures(dstSheet, cell)
		if err != nil {
			log.Warn("cannot read destination pictures", zap.String("cell", cell), zap.Error(err))
		}

		for i := range pics {
			pic := pics[i]
			if hasPicture(existing, pic) {
				res.Copied++
				log.Debug("picture already present", zap.String("cell", cell), zap.String("ext", pic.Extension))
				continue
			}
			if err := dst.AddPictureFromBytes(dstSheet, cell, &pic); err != nil {
				res.Failed++
				log.Warn("picture copy failed, skipping", zap.String("cell", cell), zap.String("ext", pic.Extension), zap.Error(err))
				continue
			}
			res.Copied++
			log.Debug("picture copied", zap.String("cell", cell), zap.String("ext", pic.Extension))
		}
	}

	log.Info("pictures copied", zap.Int("detected", res.Detected), zap.Int("copied", res.Copied), zap.Int("failed", res.Failed))
	return res
}

func hasPicture(existing []excelize.Picture, pic excelize.Picture) bool {
	for _, e := range existing {
		if e.Extension == pic.Extension && bytes.Equal(e.File, pic.File) {
			return true
		}
	}
	return false
}
