package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/porter/pkg/domain/model"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain name", input: "build-logs", want: "build-logs"},
		{name: "Extension kept", input: "report.txt", want: "report.txt"},
		{name: "Spaces replaced", input: "my artifact", want: "my_artifact"},
		{name: "Path separators replaced", input: "a/b\\c", want: "a_b_c"},
		{name: "Traversal neutralized", input: "../../etc/passwd", want: "_.._etc_passwd"},
		{name: "Leading dots stripped", input: "..hidden", want: "hidden"},
		{name: "Only dots", input: "...", want: "artifact"},
		{name: "Empty", input: "", want: "artifact"},
		{name: "Unicode replaced", input: "日本語.zip", want: "___.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.SanitizeName(tt.input)).Equal(tt.want)
		})
	}
}

func TestParseReplacePolicy(t *testing.T) {
	policy, err := model.ParseReplacePolicy("replace")
	gt.NoError(t, err)
	gt.Value(t, policy).Equal(model.PolicyReplace)

	policy, err = model.ParseReplacePolicy("skip")
	gt.NoError(t, err)
	gt.Value(t, policy).Equal(model.PolicySkip)

	_, err = model.ParseReplacePolicy("merge")
	gt.Error(t, err)

	_, err = model.ParseReplacePolicy("")
	gt.Error(t, err)
}
