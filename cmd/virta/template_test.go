package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/virta/types"
)

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `{
		"Description": "generated stack",
		"Resources": {
			"FooLogGroup": {
				"Type": "AWS::Logs::LogGroup",
				"Properties": {"LogGroupName": "/aws/lambda/svc-dev-foo"}
			}
		},
		"Outputs": {"ServiceEndpoint": {"Value": "x"}}
	}`)

	tmpl, err := loadTemplate(path)
	require.NoError(t, err)

	resource, ok := tmpl.Graph["FooLogGroup"]
	require.True(t, ok)
	assert.Equal(t, types.KindLogGroup, resource.Type)

	name, literal := resource.LogGroupName()
	assert.True(t, literal)
	assert.Equal(t, "/aws/lambda/svc-dev-foo", name)
}

func TestLoadTemplate_NoResources(t *testing.T) {
	path := writeTemplate(t, `{"Description": "empty"}`)

	tmpl, err := loadTemplate(path)
	require.NoError(t, err)
	assert.Empty(t, tmpl.Graph)
}

func TestLoadTemplate_Invalid(t *testing.T) {
	path := writeTemplate(t, `not json`)

	_, err := loadTemplate(path)
	assert.Error(t, err)
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := loadTemplate(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestTemplateSave_PreservesOtherSections(t *testing.T) {
	path := writeTemplate(t, `{
		"Description": "generated stack",
		"Resources": {
			"FooLogGroup": {
				"Type": "AWS::Logs::LogGroup",
				"Properties": {"LogGroupName": "/aws/lambda/svc-dev-foo"}
			}
		}
	}`)

	tmpl, err := loadTemplate(path)
	require.NoError(t, err)

	tmpl.Graph.Apply(types.Patch{
		"FooSubscription": types.NewSubscriptionFilter("arn:aws:lambda:us-east-1:123:function:fwd", "FooLogGroup"),
	})

	out := filepath.Join(t.TempDir(), "wired.json")
	require.NoError(t, tmpl.Save(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var saved map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Contains(t, saved, "Description")

	reloaded, err := loadTemplate(out)
	require.NoError(t, err)
	assert.Contains(t, reloaded.Graph, "FooLogGroup")
	assert.Contains(t, reloaded.Graph, "FooSubscription")
	assert.Equal(t, types.KindSubscriptionFilter, reloaded.Graph["FooSubscription"].Type)
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
