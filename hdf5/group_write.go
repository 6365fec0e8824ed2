package hdf5

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/robert-malhotra/go-uff/internal/message"
	"github.com/robert-malhotra/go-uff/internal/object"
)

// CreateGroup creates a new subgroup with the given name.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if !g.file.writable {
		return nil, fmt.Errorf("file is not writable")
	}

	if name == "" {
		return nil, fmt.Errorf("group name cannot be empty")
	}
	if strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: group name %q contains '/'", ErrInvalidPath, name)
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	if g.hasPendingLink(name) {
		return nil, fmt.Errorf("%w: %s", ErrExists, childPath(g.path, name))
	}

	// Write an empty header so the new address can be resolved before the
	// group is first flushed.
	groupMessages := object.NewEmptyGroupHeader()
	headerSize := object.HeaderSize(g.file.writer, groupMessages)
	groupAddr := g.file.allocate(int64(headerSize))

	w := g.file.writer.At(int64(groupAddr))
	if _, err := object.WriteHeader(w, groupMessages); err != nil {
		return nil, fmt.Errorf("writing group header: %w", err)
	}

	g.addLink(message.NewHardLink(name, groupAddr))

	newGroup := &Group{
		file:         g.file,
		path:         childPath(g.path, name),
		addr:         groupAddr,
		parent:       g,
		loaded:       true,
		dirty:        true,
		pendingLinks: []*message.Link{},
	}
	g.file.groups[newGroup.path] = newGroup

	return newGroup, nil
}

// SetAttr creates or replaces an attribute on the group.
// The value can be a scalar or slice of: int, int8-64, uint, uint8-64, float32, float64, string.
func (g *Group) SetAttr(name string, value interface{}) error {
	if !g.file.writable {
		return fmt.Errorf("file is not writable")
	}
	if err := g.load(); err != nil {
		return err
	}

	attr, err := createAttributeMessage(name, value)
	if err != nil {
		return fmt.Errorf("creating attribute %q: %w", name, err)
	}

	for i, existing := range g.pendingAttrs {
		if existing.Name == name {
			g.pendingAttrs[i] = attr
			g.dirty = true
			return nil
		}
	}
	g.pendingAttrs = append(g.pendingAttrs, attr)
	g.dirty = true
	return nil
}

// Unlink removes the member link with the given name. The space used by the
// member is not reclaimed.
func (g *Group) Unlink(name string) error {
	if !g.file.writable {
		return fmt.Errorf("file is not writable")
	}
	if err := g.load(); err != nil {
		return err
	}

	for i, link := range g.pendingLinks {
		if link.Name != name {
			continue
		}
		g.pendingLinks = append(g.pendingLinks[:i], g.pendingLinks[i+1:]...)
		g.dirty = true

		// Forget cached groups below the removed member.
		removed := childPath(g.path, name)
		for p := range g.file.groups {
			if p == removed || strings.HasPrefix(p, removed+"/") {
				delete(g.file.groups, p)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrNotFound, childPath(g.path, name))
}

// addLink appends a link to this group's pending links.
func (g *Group) addLink(link *message.Link) {
	g.pendingLinks = append(g.pendingLinks, link)
	g.dirty = true
}

func (g *Group) hasPendingLink(name string) bool {
	for _, link := range g.pendingLinks {
		if link.Name == name {
			return true
		}
	}
	return false
}

// load copies the group's links and attributes out of its object header so
// they can be modified in memory.
func (g *Group) load() error {
	if g.loaded {
		return nil
	}

	if g.header == nil && g.file.reader != nil {
		header, err := object.Read(g.file.reader, g.addr)
		if err != nil {
			return fmt.Errorf("reading group header: %w", err)
		}
		g.header = header
	}

	links := make([]*message.Link, 0)
	var attrs []*message.Attribute

	if g.header != nil {
		for _, msg := range g.header.GetMessages(message.TypeLink) {
			if link, ok := msg.(*message.Link); ok {
				links = append(links, link)
			}
		}
		for _, msg := range g.header.GetMessages(message.TypeAttribute) {
			if attr, ok := msg.(*message.Attribute); ok {
				attrs = append(attrs, attr)
			}
		}

		// Members of symbol-table groups are carried over as link messages;
		// the group is rewritten in the link-message format on flush.
		if symMsg := g.header.GetMessage(message.TypeSymbolTable); symMsg != nil {
			entries, err := g.getMembersV1(symMsg.(*message.SymbolTable))
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if entry.LinkType == 1 {
					links = append(links, message.NewSoftLink(entry.Name, entry.SoftLinkValue))
				} else {
					links = append(links, message.NewHardLink(entry.Name, entry.ObjectAddress))
				}
			}
		}
	}

	g.pendingLinks = links
	g.pendingAttrs = attrs
	g.loaded = true
	return nil
}

// rewriteHeader writes the group's object header with all pending links and
// attributes at a freshly allocated address.
func (g *Group) rewriteHeader() error {
	messages := object.NewGroupHeader(g.pendingLinks, g.pendingAttrs)

	// Use minimum chunk size for h5py compatibility
	headerSize := object.HeaderSizeWithMinChunk(g.file.writer, messages, object.MinGroupChunkSize)

	// Allocate new space (we can't resize in place, so allocate new)
	newAddr := g.file.allocate(int64(headerSize))

	w := g.file.writer.At(int64(newAddr))
	if _, err := object.WriteHeaderWithMinChunk(w, messages, object.MinGroupChunkSize); err != nil {
		return err
	}

	g.addr = newAddr
	g.header = &object.Header{Version: 2, Address: newAddr, Messages: messages}
	g.dirty = false

	if g.parent == nil {
		g.file.superblock.RootGroupAddress = newAddr
		return nil
	}
	return g.parent.updateLink(path.Base(g.path), newAddr)
}

// updateLink repoints the named hard link at a new object address.
func (g *Group) updateLink(name string, addr uint64) error {
	if err := g.load(); err != nil {
		return err
	}
	for _, link := range g.pendingLinks {
		if link.Name == name {
			link.ObjectAddress = addr
			g.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: link %q in %s", ErrNotFound, name, g.path)
}

// flushGroups rewrites every dirty group, deepest first, so that each parent
// is written after its children have settled at their final addresses.
func (f *File) flushGroups() error {
	byDepth := make(map[int][]*Group)
	maxDepth := 0
	for _, g := range f.groups {
		d := groupDepth(g.path)
		byDepth[d] = append(byDepth[d], g)
		if d > maxDepth {
			maxDepth = d
		}
	}

	for d := maxDepth; d >= 0; d-- {
		groups := byDepth[d]
		sort.Slice(groups, func(i, j int) bool { return groups[i].path < groups[j].path })
		for _, g := range groups {
			if !g.dirty {
				continue
			}
			if err := g.rewriteHeader(); err != nil {
				return fmt.Errorf("writing group %s: %w", g.path, err)
			}
		}
	}
	return nil
}

func groupDepth(p string) int {
	if p == "/" {
		return 0
	}
	return strings.Count(p, "/")
}

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return path.Join(parent, name)
}
