package instance

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// exampleSpec is a raw job specification the way the cluster scheduler
// sends it, before any translation
func exampleSpec() map[string]interface{} {
	return map[string]interface{}{
		"index":          0,
		"droplet":        42,
		"version":        "v1",
		"name":           "app",
		"uris":           []interface{}{},
		"users":          []interface{}{},
		"sha1":           "abc",
		"executableFile": "f",
		"executableUri":  "http://x",
		"runtime":        "ruby19",
		"framework":      "sinatra",
		"limits":         map[string]interface{}{},
		"env":            map[string]interface{}{},
		"services":       []interface{}{},
		"flapping":       false,
		"debug":          nil,
		"console":        false,
	}
}

func TestTranslate(t *testing.T) {
	Convey("test translate renames raw keys into canonical attributes", t, func() {
		attributes := Translate(exampleSpec())
		So(attributes["instance_index"], ShouldEqual, 0)
		So(attributes["application_id"], ShouldEqual, 42)
		So(attributes["application_version"], ShouldEqual, "v1")
		So(attributes["application_name"], ShouldEqual, "app")
		So(attributes["droplet_sha1"], ShouldEqual, "abc")
		So(attributes["droplet_file"], ShouldEqual, "f")
		So(attributes["droplet_uri"], ShouldEqual, "http://x")
		So(attributes["runtime_name"], ShouldEqual, "ruby19")
		So(attributes["framework_name"], ShouldEqual, "sinatra")
		// raw keys are gone after renaming
		So(attributes, ShouldNotContainKey, "index")
		So(attributes, ShouldNotContainKey, "droplet")
		So(attributes, ShouldNotContainKey, "env")
		// opaque blobs pass through untouched
		So(attributes, ShouldContainKey, "environment")
		So(attributes, ShouldContainKey, "debug")
		So(attributes["flapping"], ShouldEqual, false)
	})
}

func TestValidate(t *testing.T) {
	testcases := []struct {
		caseName         string
		skipped          bool
		mutate           func(raw map[string]interface{})
		expectViolations []string
	}{
		{
			caseName:         "test a complete specification passes",
			skipped:          false,
			mutate:           func(raw map[string]interface{}) {},
			expectViolations: nil,
		},
		{
			caseName: "test every missing field is reported",
			skipped:  false,
			mutate: func(raw map[string]interface{}) {
				delete(raw, "index")
				delete(raw, "runtime")
			},
			expectViolations: []string{
				"missing field instance_index",
				"missing field runtime_name",
			},
		},
		{
			caseName: "test mistyped fields are reported",
			skipped:  false,
			mutate: func(raw map[string]interface{}) {
				raw["droplet"] = "not-a-number"
				raw["uris"] = []interface{}{"ok", 3}
			},
			expectViolations: []string{
				"field application_id is not an integer",
				"field application_uris is not a string list",
			},
		},
		{
			caseName: "test json numbers are accepted as integers",
			skipped:  false,
			mutate: func(raw map[string]interface{}) {
				raw["index"] = float64(0)
				raw["droplet"] = float64(42)
			},
			expectViolations: nil,
		},
		{
			caseName: "test fractional numbers are not integers",
			skipped:  false,
			mutate: func(raw map[string]interface{}) {
				raw["droplet"] = 42.5
			},
			expectViolations: []string{
				"field application_id is not an integer",
			},
		},
	}
	for _, testcase := range testcases {
		if testcase.skipped {
			continue
		}
		t.Log(testcase.caseName)
		Convey(testcase.caseName, t, func() {
			raw := exampleSpec()
			testcase.mutate(raw)
			attributes := Translate(raw)
			// instance_id is assigned at creation, not carried by the spec
			attributes["instance_id"] = "test-instance-id"
			err := Validate(attributes)
			if testcase.expectViolations == nil {
				So(err, ShouldBeNil)
			} else {
				So(err, ShouldNotBeNil)
				violation, ok := err.(*SchemaViolationError)
				So(ok, ShouldBeTrue)
				for _, expected := range testcase.expectViolations {
					So(violation.Violations, ShouldContain, expected)
				}
				So(len(violation.Violations), ShouldEqual, len(testcase.expectViolations))
			}
		})
	}
}
