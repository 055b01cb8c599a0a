package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTopicFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_RoundTrip(t *testing.T) {
	path := writeTopicFile(t, "# Tech\n/r/programming\n/r/golang\n")

	m := Load(path)

	assert.Equal(t, Map{"Tech": {"programming", "golang"}}, m)
}

func TestLoad_PreservesDeclarationOrder(t *testing.T) {
	path := writeTopicFile(t, "# AI\n/r/MachineLearning\n/r/artificial\n/r/LocalLLaMA\n")

	m := Load(path)

	assert.Equal(t, []string{"MachineLearning", "artificial", "LocalLLaMA"}, m["AI"])
}

func TestLoad_IgnoresDecorationAndBlankLines(t *testing.T) {
	content := "# ----- #\n\n# Tech\n\n/r/golang\nsome stray text\n# ----- #\n"
	path := writeTopicFile(t, content)

	m := Load(path)

	require.Len(t, m, 1)
	assert.Equal(t, []string{"golang"}, m["Tech"])
}

func TestLoad_StripsTrailingSlash(t *testing.T) {
	path := writeTopicFile(t, "# Tech\n/r/golang/\n/r/\n")

	m := Load(path)

	assert.Equal(t, []string{"golang"}, m["Tech"])
}

func TestLoad_SubredditBeforeAnyTopicIsIgnored(t *testing.T) {
	path := writeTopicFile(t, "/r/orphan\n# Tech\n/r/golang\n")

	m := Load(path)

	assert.Equal(t, Map{"Tech": {"golang"}}, m)
}

func TestLoad_MissingFileYieldsEmptyMap(t *testing.T) {
	m := Load(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Empty(t, m)
}

func TestLoad_MultipleTopics(t *testing.T) {
	content := "# Tech\n/r/golang\n# News\n/r/worldnews\n/r/news\n"
	path := writeTopicFile(t, content)

	m := Load(path)

	assert.Equal(t, []string{"golang"}, m["Tech"])
	assert.Equal(t, []string{"worldnews", "news"}, m["News"])
	assert.ElementsMatch(t, []string{"Tech", "News"}, m.Names())
}
