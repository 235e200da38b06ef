package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyName(t *testing.T) {
	tests := []struct {
		namespace string
		key       string
		want      string
	}{
		{NamespaceIcon, "home", "ICON_HOME"},
		{NamespaceIcon, "arrow-left", "ICON_ARROW_LEFT"},
		{NamespaceIcon, "a--b", "ICON_A__B"},
		{NamespaceIcon, "foo_bar", "ICON_FOO_BAR"},
		{NamespaceCategory, "file-types", "CATEGORY_FILE_TYPES"},
		{NamespaceCategory, "stra\u00dfe", "CATEGORY_STRASSE"},
		{NamespaceIcon, "", "ICON_"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyName(tt.namespace, tt.key))
		})
	}
}
