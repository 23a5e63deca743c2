// Command protoc-gen-transcoder is the protoc plugin entry point: it
// reads a CodeGeneratorRequest from stdin, drives gen.BuildSchema,
// gen.EmitFile and gen.BundleMsgFiles over every requested file, and
// writes a CodeGeneratorResponse to stdout. The per-type dispatch below
// mirrors ros-z-codegen-go/main.go's generateMessage loop; the
// stdin/stdout protocol and the three named options come from
// protogen.Options, the same convention protoc-gen-go itself uses.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/roswire/transcoder/gen"
	pkgerrors "github.com/pkg/errors"
	"google.golang.org/protobuf/compiler/protogen"
)

func main() {
	var flags flag.FlagSet
	addNamespace := flags.Bool("add_namespace", false, "prefix generated package paths with the ROS namespace")
	packageName := flags.String("package_name", "", "override the Go package name emitted for every file")
	targetName := flags.String("target_name", "", "base name used for the companion .msg bundle")

	protogen.Options{ParamFunc: flags.Set}.Run(func(p *protogen.Plugin) error {
		p.SupportedFeatures = uint64(0)

		for _, f := range p.Files {
			if !f.Generate {
				continue
			}
			if err := generateFile(p, f, *addNamespace, *packageName, *targetName); err != nil {
				fmt.Fprintf(os.Stderr, "transcoder: failed to generate %s: %v\n", f.Desc.Path(), err)
				return err
			}
			fmt.Fprintf(os.Stderr, "transcoder: generated %s\n", f.Desc.Path())
		}
		return nil
	})
}

func generateFile(p *protogen.Plugin, f *protogen.File, addNamespace bool, packageName, targetName string) error {
	schema := gen.BuildSchema(f)
	if packageName != "" {
		schema.GoPackage = packageName
	}

	goPath := goFileName(f, addNamespace)
	src, err := gen.EmitFile(schema)
	if err != nil {
		return pkgerrors.Wrapf(err, "emitting %s", goPath)
	}
	gf := p.NewGeneratedFile(goPath, f.GoImportPath)
	if _, err := gf.Write(src); err != nil {
		return pkgerrors.Wrapf(err, "writing %s", goPath)
	}

	msgPath := msgBundlePath(f, targetName)
	bundle, err := gen.BundleMsgFiles(schema, msgPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "bundling %s.msg.zip", msgPath)
	}
	zipPath := msgZipName(f, targetName)
	zf := p.NewGeneratedFile(zipPath, f.GoImportPath)
	if _, err := zf.Write(bundle); err != nil {
		return pkgerrors.Wrapf(err, "writing %s", zipPath)
	}
	return nil
}

// goFileName matches protoc-gen-go's own "strip .proto, append
// .transcoder.go" convention, optionally rooted under the ROS namespace
// directory add_namespace requests.
func goFileName(f *protogen.File, addNamespace bool) string {
	base := strings.TrimSuffix(f.Desc.Path(), ".proto") + ".transcoder.go"
	if addNamespace {
		return string(f.GoPackageName) + "/" + base
	}
	return base
}

func msgBundlePath(f *protogen.File, targetName string) string {
	if targetName != "" {
		return targetName
	}
	return string(f.GoPackageName)
}

func msgZipName(f *protogen.File, targetName string) string {
	base := targetName
	if base == "" {
		base = strings.TrimSuffix(f.Desc.Path(), ".proto")
	}
	return base + ".msg.zip"
}
