package selector

import "testing"

func TestIsStableID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"product-title", true},
		{"main-navigation", true},
		{"searchbox", true},
		{"", false},
		{"u_0_9_QM", false},                             // framework token pattern
		{"a1b2c3d4e5f6a7b8", false},                     // hash shaped
		{"3f2a9c81bd44", false},                         // hex run
		{"f81d4fae-7dec-11d0-a765-00a0c91e6bf6", false}, // uuid
		{"item-123456", false},                          // trailing digit counter
		{"ember123", false},
		{"react-42", false},
		{"vue-7", false},
		{"widget_12", false}, // dynamic suffix
		{"footer_1234", false},
		{"sidebar_12345", false}, // trailing digits beat the suffix max
	}
	for _, tt := range tests {
		if got := IsStableID(tt.id); got != tt.expected {
			t.Errorf("IsStableID(%q) = %v; want %v", tt.id, got, tt.expected)
		}
	}
}

func TestIsStableClass(t *testing.T) {
	tests := []struct {
		class    string
		expected bool
	}{
		{"price", true},
		{"product-card", true},
		{"nav-item", true},
		{"", false},
		{"hover:bg-blue", false}, // utility modifier
		{"w-[100px]", false},
		{"css-1q2w3e", false}, // css-in-js
		{"sc-bdVaJa", false},
		{"abcdefghijk", false}, // long minified token
		{"col-2", false},       // any digit disqualifies
		{"mt4", false},
	}
	for _, tt := range tests {
		if got := IsStableClass(tt.class); got != tt.expected {
			t.Errorf("IsStableClass(%q) = %v; want %v", tt.class, got, tt.expected)
		}
	}
}

func TestHasStableText(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"Add to cart", true},
		{"Contact Information and Details", true},
		{"OK", true},
		{"", false},
		{"A", false}, // too short
		{"This is a very long label that exceeds the allowed length", false},
		{"Price: $9.99", false},   // punctuation and digits
		{"John Smith", false},     // name shaped
		{"Anna Maria Lee", false}, // three word name
		{"johndoe", false},        // single lowercase word
		{"Qty 3", false},          // digit
		{"Précis", false},         // non-ascii
	}
	for _, tt := range tests {
		if got := HasStableText(tt.text); got != tt.expected {
			t.Errorf("HasStableText(%q) = %v; want %v", tt.text, got, tt.expected)
		}
	}
}

func TestStableLabelText(t *testing.T) {
	if _, ok := stableLabelText("Price:"); !ok {
		t.Errorf("expected 'Price:' to qualify as label text")
	}
	if label, _ := stableLabelText("  Price: "); label != "Price:" {
		t.Errorf("expected label to be normalized, got %q", label)
	}
	if _, ok := stableLabelText("John Smith:"); ok {
		t.Errorf("name shaped label should not qualify")
	}
}
