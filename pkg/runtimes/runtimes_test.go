package runtimes

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const runtimesYaml = `
- name: ruby19
  executable: ruby
  version: 1.9.2
  version_flag: --version
  environment:
    RAILS_ENV: production
- name: node
  executable: node
  version: 0.4.12
`

func TestRegistryLoad(t *testing.T) {
	Convey("test registry loads runtimes from yaml", t, func() {
		dir, err := ioutil.TempDir("", "runtimes")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "runtimes.yaml")
		err = ioutil.WriteFile(path, []byte(runtimesYaml), 0644)
		So(err, ShouldBeNil)

		reg := NewRegistry()
		So(reg.Load(path), ShouldBeNil)

		ruby, ok := reg.Lookup("ruby19")
		So(ok, ShouldBeTrue)
		So(ruby.Executable, ShouldEqual, "ruby")
		So(ruby.Version, ShouldEqual, "1.9.2")
		So(ruby.Environment["RAILS_ENV"], ShouldEqual, "production")

		_, ok = reg.Lookup("python")
		So(ok, ShouldBeFalse)
	})
}

func TestRegistryLoadMissingFile(t *testing.T) {
	Convey("test registry load error on a missing file", t, func() {
		reg := NewRegistry()
		So(reg.Load("/does/not/exist.yaml"), ShouldNotBeNil)
		_, ok := reg.Lookup("ruby19")
		So(ok, ShouldBeFalse)
	})
}
