package raster

import (
	"context"
	"os/exec"
	"reflect"
	"runtime"
	"testing"
)

func TestConvertArgs(t *testing.T) {
	c := NewConvert("convert", 600, NorthWest, white)

	got := c.variantArgs("600px/black/foo.png", 437, "scaled/foo-437.png")
	want := []string{
		"600px/black/foo.png",
		"-resize", "437x437",
		"-background", "#ffffffff",
		"-extent", "600x600",
		"scaled/foo-437.png",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("variantArgs:\nexpected %v\ngot      %v", want, got)
	}

	c.Anchor = Center
	got = c.variantArgs("a.png", 2, "b.png")
	want = []string{"a.png", "-resize", "2x2", "-background", "#ffffffff", "-gravity", "center", "-extent", "600x600", "b.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("variantArgs (center):\nexpected %v\ngot      %v", want, got)
	}

	got = c.concatArgs([]string{"a-600.png", "a-437.png"}, "a-tiled.png")
	want = []string{"a-600.png", "a-437.png", "-background", "#ffffffff", "+append", "a-tiled.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("concatArgs:\nexpected %v\ngot      %v", want, got)
	}
}

func TestConvertReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix false binary")
	}
	bin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	c := NewConvert(bin, 600, NorthWest, white)
	if err := c.Variant(context.Background(), "a.png", 10, "b.png"); err == nil {
		t.Error("Expected error from failing tool")
	}
	if err := c.Concat(context.Background(), nil, "b.png"); err == nil {
		t.Error("Expected error for empty concat")
	}
}
