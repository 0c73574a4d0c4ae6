package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/hvanthou/hv/internal/gitlab"
)

// RenderMergeRequests renders bot merge requests grouped by project with a
// running index across projects.
// Example output:
//
//	Found Renovate Merge Requests:
//	├─ Project: group/ab/ab-data-platform-dev
//	│  ├─ 1. chore(deps): update module x to v2
//	│  │     https://gitlab.example.com/...
//	│  ╰─ 2. chore(deps): update dbt-core
//	│        https://gitlab.example.com/...
//	╰─ Project: group/cd/cd-data-platform-dev
//	   ╰─ 3. fix(deps): update pandas
//	         https://gitlab.example.com/...
//
//	Total MRs found: 3
func RenderMergeRequests(mrs []gitlab.MergeRequest) string {
	if len(mrs) == 0 {
		return WarningStyle.Render("No open Renovate merge requests found")
	}

	t := tree.Root(HeaderStyle.Render("Found Renovate Merge Requests:"))

	order, groups := gitlab.GroupByProject(mrs)
	index := 0
	for _, path := range order {
		projectNode := tree.Root(TreeRootStyle.Render("Project: " + path))
		for _, mr := range groups[path] {
			index++
			projectNode.Child(fmt.Sprintf("%d. %s\n   %s", index, mr.Title, Link(mr.WebURL)))
		}
		t.Child(projectNode)
	}

	styleTree(t)

	return t.String() + "\n\n" + InfoStyle.Render(fmt.Sprintf("Total MRs found: %d", index))
}

// RenderReviews renders merge requests awaiting the user's review
func RenderReviews(mrs []gitlab.MergeRequest) string {
	if len(mrs) == 0 {
		return WarningStyle.Render("No open merge requests found where you are a reviewer")
	}

	t := tree.Root(HeaderStyle.Render("Merge Requests to Review:"))
	for i, mr := range mrs {
		node := tree.Root(TreeRootStyle.Render(fmt.Sprintf("%d. %s", i+1, mr.Title)))
		node.Child("Project: " + mr.References.Full)
		node.Child("Author: " + mr.Author.Name)
		node.Child(Link(mr.WebURL))
		t.Child(node)
	}

	styleTree(t)

	return t.String() + "\n\n" + InfoStyle.Render(fmt.Sprintf("Total MRs to review: %d", len(mrs)))
}

// RenderCacheStats renders directory cache counters
func RenderCacheStats(stats gitlab.CacheStats) string {
	t := tree.Root(HeaderStyle.Render("Cache Statistics:")).
		Child(fmt.Sprintf("Hits: %d", stats.Hits)).
		Child(fmt.Sprintf("Misses: %d", stats.Misses)).
		Child(fmt.Sprintf("Current size: %d", stats.Size))

	styleTree(t)
	return t.String()
}

func styleTree(t *tree.Tree) {
	t.Enumerator(getRoundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(RenderTreeIndenter())
}

// getRoundedEnumerator returns a custom rounded enumerator for trees
func getRoundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

// RenderTreeIndenter returns an indenter function for trees
func RenderTreeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "   "
		}
		return "│  "
	}
}
