package publishers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/headline-harvester/pkg/publishers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistry(t *testing.T) {
	t.Parallel()

	t.Run("decodes yaml sinks with defaults", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
publishers:
  - id: " headlines-topic "
    type: QUEUE
    queue:
      provider: aws-sns
      sns:
        topic_arn: arn:aws:sns:sa-east-1:123456789012:headlines
        region: sa-east-1
  - id: webhook
    type: http
    enabled: false
    http:
      url: https://hooks.example.com/headlines
      headers:
        Authorization: " Bearer token "
        "": ignored
`)

		reg, err := publishers.ParseRegistry(data, ".yaml")

		require.NoError(t, err)
		all := reg.All()
		require.Len(t, all, 2)

		sns, ok := reg.ByID("headlines-topic")
		require.True(t, ok)
		assert.Equal(t, publishers.TypeQueue, sns.Type)
		assert.Equal(t, "sa-east-1", sns.Queue.SNS.Region)
		assert.True(t, sns.EnabledValue())

		hook, ok := reg.ByID("webhook")
		require.True(t, ok)
		assert.Equal(t, "POST", hook.HTTP.Method)
		assert.Equal(t, 5, hook.HTTP.TimeoutSeconds)
		assert.Equal(t, map[string]string{"Authorization": "Bearer token"}, hook.HTTP.Headers)

		enabled := reg.Enabled()
		require.Len(t, enabled, 1)
		assert.Equal(t, "headlines-topic", enabled[0].ID)
	})

	t.Run("decodes json sinks", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"publishers":[{"id":"inbox","type":"queue","queue":{"provider":"aws-sqs","sqs":{"uri":"https://sqs.sa-east-1.amazonaws.com/123/headlines","region":"sa-east-1"}}}]}`)

		reg, err := publishers.ParseRegistry(data, ".json")

		require.NoError(t, err)
		cfg, ok := reg.ByID("inbox")
		require.True(t, ok)
		assert.Equal(t, "https://sqs.sa-east-1.amazonaws.com/123/headlines", cfg.Queue.SQS.QueueURL)
		assert.Equal(t, "sa-east-1", cfg.Queue.SQS.Region)
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"missing id":        `publishers: [{type: http, http: {url: "https://x"}}]`,
			"missing type":      `publishers: [{id: a}]`,
			"unknown type":      `publishers: [{id: a, type: kafka}]`,
			"unknown provider":  `publishers: [{id: a, type: queue, queue: {provider: azure}}]`,
			"sqs without url":   `publishers: [{id: a, type: queue, queue: {provider: aws-sqs, sqs: {region: x}}}]`,
			"gcp without topic": `publishers: [{id: a, type: queue, queue: {provider: gcp, gcp: {project_id: p}}}]`,
			"unsupported verb":  `publishers: [{id: a, type: http, http: {url: "https://x", method: put}}]`,
			"duplicate id":      `publishers: [{id: a, type: http, http: {url: "https://x"}}, {id: a, type: http, http: {url: "https://y"}}]`,
			"empty list":        `publishers: []`,
		}
		for name, data := range tests {
			_, err := publishers.ParseRegistry([]byte(data), ".yml")
			assert.Error(t, err, name)
		}
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		t.Parallel()

		_, err := publishers.ParseRegistry([]byte(`publishers: []`), ".toml")

		assert.Error(t, err)
	})
}

func TestLoadRegistry_ExpandsEnvironment(t *testing.T) {
	t.Setenv("HEADLINES_HOOK_URL", "https://hooks.example.com/ready")

	path := filepath.Join(t.TempDir(), "publishers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
publishers:
  - id: hook
    type: http
    http:
      url: ${HEADLINES_HOOK_URL}
`), 0o600))

	reg, err := publishers.LoadRegistry(path)

	require.NoError(t, err)
	cfg, ok := reg.ByID("hook")
	require.True(t, ok)
	assert.Equal(t, "https://hooks.example.com/ready", cfg.HTTP.URL)
}
