// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const (
	benchRuleCount = 96
	benchPathCount = 512
)

var (
	benchDecisionSink Decision
	benchResultSink   LookupResult
	benchCountSink    int
)

func BenchmarkParseRuleStore(b *testing.B) {
	src := buildBenchmarkRulesSource(benchRuleCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := ParseRuleStoreString(src, false)
		if err != nil {
			b.Fatal(err)
		}

		if s.Len() == 0 {
			b.Fatal("empty rules")
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	s, err := ParseRuleStoreString(buildBenchmarkRulesSource(benchRuleCount), false)
	if err != nil {
		b.Fatal(err)
	}

	paths := benchmarkPaths(benchPathCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDecisionSink = s.Lookup(paths[i%len(paths)], DirFalse)
	}
}

func BenchmarkLookupIgnoreCase(b *testing.B) {
	s, err := ParseRuleStoreString(buildBenchmarkRulesSource(benchRuleCount), true)
	if err != nil {
		b.Fatal(err)
	}

	paths := benchmarkPaths(benchPathCount)
	for i := range paths {
		paths[i] = strings.ToUpper(paths[i])
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchDecisionSink = s.Lookup(paths[i%len(paths)], DirFalse)
	}
}

func BenchmarkExplain(b *testing.B) {
	s, err := ParseRuleStoreString(buildBenchmarkRulesSource(benchRuleCount), false)
	if err != nil {
		b.Fatal(err)
	}

	paths := benchmarkPaths(benchPathCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchResultSink = s.Explain(paths[i%len(paths)], DirFalse)
	}
}

func BenchmarkCheckPaths(b *testing.B) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/bench/.git/info", 0o755); err != nil {
		b.Fatal(err)
	}

	src := buildBenchmarkRulesSource(benchRuleCount)
	if err := afero.WriteFile(fsys, "/bench/.git/info/sparse-checkout", []byte(src), 0o644); err != nil {
		b.Fatal(err)
	}

	repo, err := NewRepository("/bench/.git", "/bench", Options{
		Fs:     fsys,
		Config: NewMemoryConfig(map[string]bool{KeySparseCheckout: true}),
	})
	if err != nil {
		b.Fatal(err)
	}

	paths := benchmarkPaths(benchPathCount)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results, err := repo.CheckPaths(ctx, paths)
		if err != nil {
			b.Fatal(err)
		}

		checkout := 0
		for j := range results {
			if results[j].Decision == Checkout {
				checkout++
			}
		}

		benchCountSink = checkout
	}
}

func buildBenchmarkRulesSource(ruleCount int) string {
	var sb strings.Builder
	sb.Grow(ruleCount * 24)

	sb.WriteString("# bench rules\n")
	sb.WriteString("/*\n")
	sb.WriteString("!/*/\n")

	for i := 0; i < ruleCount; i++ {
		switch i % 6 {
		case 0:
			_, _ = fmt.Fprintf(&sb, "assets/group_%03d/\n", i%37)
		case 1:
			_, _ = fmt.Fprintf(&sb, "!assets/group_%03d/\n", i%37)
		case 2:
			_, _ = fmt.Fprintf(&sb, "/scripts/module_%03d/*.c\n", i%71)
		case 3:
			_, _ = fmt.Fprintf(&sb, "build_%03d/\n", i%29)
		case 4:
			_, _ = fmt.Fprintf(&sb, "data/file_%03d_[0-9].bin\n", i%53)
		default:
			_, _ = fmt.Fprintf(&sb, "docs/section_%03d/**/*.md\n", i%41)
		}
	}

	return sb.String()
}

func benchmarkPaths(pathCount int) []string {
	paths := make([]string, 0, pathCount)
	for i := 0; i < pathCount; i++ {
		switch i % 7 {
		case 0:
			paths = append(paths, fmt.Sprintf("assets/group_%03d/tex_%05d.paa", i%37, i))
		case 1:
			paths = append(paths, fmt.Sprintf("assets/group_%03d/keep_%05d.paa", i%37, i))
		case 2:
			paths = append(paths, fmt.Sprintf("scripts/module_%03d/main_%02d.c", i%71, i%19))
		case 3:
			paths = append(paths, fmt.Sprintf("build_%03d/cache_%04d.bin", i%29, i))
		case 4:
			paths = append(paths, fmt.Sprintf("data/file_%03d_%d.bin", i%53, i%10))
		case 5:
			paths = append(paths, fmt.Sprintf("docs/section_%03d/chapter_%02d/readme.md", i%41, i%17))
		default:
			paths = append(paths, fmt.Sprintf("misc/file_%05d.txt", i))
		}
	}

	return paths
}
