package main

import (
	"flag"
	"fmt"
	"net/netip"
	"os"

	"github.com/henderiw/idtree/pkg/labeltree"
	"github.com/henderiw/idtree/pkg/prefixtree"
	"github.com/henderiw/idtree/pkg/tree"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/klog/v2"
)

var prefixes = []struct {
	prefix string
	labels map[string]string
}{
	{prefix: "10.0.1.0/24", labels: map[string]string{"site": "a"}},
	{prefix: "10.0.2.0/24", labels: map[string]string{"site": "b"}},
	{prefix: "10.0.0.0/16", labels: map[string]string{"region": "eu"}},
	{prefix: "10.0.1.128/25", labels: map[string]string{"site": "a", "role": "lan"}},
	{prefix: "10.1.0.0/16", labels: map[string]string{"region": "us"}},
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	log := klog.Background()

	fs := tree.NewTree(
		tree.Build("/", "/",
			tree.Build("/bin", "bin/",
				tree.NewNode("/bin/ls", "ls"),
				tree.NewNode("/bin/pwd", "pwd"),
			),
			tree.Build("/home", "home/",
				tree.Build("/home/omar", "omar/",
					tree.NewNode("/home/omar/readme.md", "readme.md"),
					tree.NewNode("/home/omar/changelog.md", "changelog.md"),
				),
			),
		),
	)
	fmt.Print(fs.String())
	route, _ := fs.RouteByNode("/home/omar/changelog.md")
	log.Info("filesystem", "count", fs.Count(), "depth", fs.Depth(), "route", route.String())

	lt := labeltree.New("/", labels.Set{"type": "dir"}, labeltree.WithLogger(log.WithName("labeltree")))
	iter := fs.Iterate()
	for iter.Next() {
		n := iter.Node()
		parent := fs.Parent(n.ID())
		if parent == nil {
			continue
		}
		kind := "dir"
		if n.IsLeaf() {
			kind = "file"
		}
		if err := lt.Add(parent.ID(), n.ID(), labels.Set{"type": kind}); err != nil {
			log.Error(err, "cannot add entry", "id", n.ID())
			os.Exit(1)
		}
	}
	files := lt.GetByLabel(labels.SelectorFromSet(labels.Set{"type": "file"}))
	log.Info("files", "ids", files.IDs())

	pt, err := prefixtree.ParseAndNew("10.0.0.0/8", prefixtree.WithLogger(log.WithName("prefixtree")))
	if err != nil {
		log.Error(err, "cannot create prefix tree")
		os.Exit(1)
	}
	for _, p := range prefixes {
		if err := pt.Insert(netip.MustParsePrefix(p.prefix), p.labels); err != nil {
			log.Error(err, "cannot insert prefix", "prefix", p.prefix)
			os.Exit(1)
		}
	}
	fmt.Print(pt.String())
	e, err := pt.Lookup(netip.MustParseAddr("10.0.1.200"))
	if err != nil {
		log.Error(err, "lookup failed")
		os.Exit(1)
	}
	log.Info("lookup", "addr", "10.0.1.200", "prefix", e.Prefix().String())
}
