package bundle

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

var (
	dbtDirs       = []string{"models", "macros", "analyses"}
	dbtExtensions = []string{".sql", ".yml", ".yaml"}
	dbtSkipDirs   = []string{".venv", "target", "dbt_packages"}
)

// DBTFiles lists the model, macro and analysis files of a dbt project, sorted
func DBTFiles(folder string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if slices.Contains(dbtSkipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(dbtExtensions, filepath.Ext(p)) {
			return nil
		}
		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return nil
		}
		if inDBTDir(filepath.Dir(rel)) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func inDBTDir(dir string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if slices.Contains(dbtDirs, part) {
			return true
		}
	}
	return false
}

// BuildDBT bundles the dbt files of every folder
func BuildDBT(folders []string) Result {
	var b builder
	for _, folder := range folders {
		files, err := DBTFiles(folder)
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}
		for _, f := range files {
			b.add(folder, f)
		}
	}
	return b.result()
}
