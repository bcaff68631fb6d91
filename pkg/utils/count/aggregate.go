package count

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/yeisme/locscope/pkg/models"
)

// FoldFolder 按顺序汇总成功分析的文件，并按语言分组
func FoldFolder(entries []models.FileEntry) models.FolderStats {
	f := models.NewFolderStats()
	for _, e := range entries {
		f.AddFile(e)
	}
	return f
}

// skipReason 把分析错误映射为跳过原因
func skipReason(err error) models.SkipReason {
	switch {
	case errors.Is(err, ErrUnsupportedLanguage):
		return models.SkipUnsupported
	case errors.Is(err, ErrInputTooLarge):
		return models.SkipTooLarge
	default:
		return models.SkipUnreadable
	}
}

// recordSkip 把文件级错误转换为跳过记录并输出警告，文件夹分析继续进行
func recordSkip(f *models.FolderStats, logger *zerolog.Logger, path string, err error) {
	reason := skipReason(err)
	s := models.SkippedFile{Path: path, Reason: reason}
	var fe *FileError
	if errors.As(err, &fe) && fe.Err != nil {
		s.Error = fe.Err.Error()
	} else if fe == nil {
		s.Error = err.Error()
	}
	f.Skip(s)
	logger.Warn().Str("file", path).Str("reason", string(reason)).Err(err).Msg("skipping file")
}
