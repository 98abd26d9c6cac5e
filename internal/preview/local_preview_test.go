package preview

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
)

func TestValidateAndResolveDocsDir_RequiresDocsDir(t *testing.T) {
	cfg := &config.Config{}
	_, err := validateAndResolveDocsDir(cfg)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestValidateAndResolveDocsDir_ErrorsWhenMissingDir(t *testing.T) {
	cfg := &config.Config{Build: config.BuildConfig{DocsDir: t.TempDir() + "/does-not-exist"}}
	_, err := validateAndResolveDocsDir(cfg)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryFileSystem))
}

func TestValidateAndResolveDocsDir_ReturnsAbsoluteDir(t *testing.T) {
	docsDir := t.TempDir()
	cfg := &config.Config{Build: config.BuildConfig{DocsDir: docsDir}}

	abs, err := validateAndResolveDocsDir(cfg)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))
	require.Equal(t, filepath.Clean(docsDir), abs)
}
