package grammar

// Combinators build reusable sub-grammars. Each one returns the entry
// alternatives of the sub-grammar, ready to be linked under a parent, and
// continues into next once the sub-grammar has been consumed.

func prepend(n Node, rest []Node) []Node {
	return append([]Node{n}, rest...)
}

// Position is a coordinate triple. Each axis is either absolute or "~"
// relative; alternatively all three axes are "^" local offsets.
func (g *Graph) Position(next ...Node) []Node {
	axis := func(label string, then []Node) []Node {
		return []Node{
			g.RelativeOffset().Describe(label + ":relative " + label).Link(then...),
			g.Float().Describe(label + ":absolute " + label).Link(then...),
		}
	}
	z := axis("z", next)
	y := axis("y", z)
	x := axis("x", y)

	local := g.LocalOffset().Describe("left:local left").Link(
		g.LocalOffset().Describe("up:local up").Link(
			g.LocalOffset().Describe("forward:local forward").Link(next...)))

	return append(x, local)
}

// Range is an integer range: "n", "n..", "..m", "n..m", each optionally
// negated with a leading "!".
func (g *Graph) Range(next ...Node) []Node {
	upper := g.RangeInt().Describe("max:upper bound").Link(next...)
	openDots := g.Keyword("..").WithLabel("range").Link(prepend(upper, next)...)
	lower := g.RangeInt().Describe("min:lower bound").Link(prepend(openDots, next)...)
	leadDots := g.Keyword("..").WithLabel("range").Link(upper)
	negate := g.Keyword("!").Describe("not:negate range").Link(lower, leadDots)
	return []Node{lower, leadDots, negate}
}

var gameModes = []string{"0", "survival", "s", "1", "creative", "c", "2", "adventure", "a", "spectator"}

var itemLocations = []string{
	"slot.armor", "slot.armor.chest", "slot.armor.feet", "slot.armor.head",
	"slot.armor.legs", "slot.chest", "slot.enderchest", "slot.equippable",
	"slot.hotbar", "slot.inventory", "slot.saddle", "slot.weapon.mainhand",
	"slot.weapon.offhand",
}

// Selector is a target selector ("@a", "@e[type=cow,r=5]") or a player
// name, bare or quoted.
func (g *Graph) Selector(next ...Node) []Node {
	start := g.Keyword("[").WithLabel("filters").Link(g.selectorFilters(next)...)
	return []Node{
		g.Keyword("@p", "@a", "@r", "@s", "@e", "@initiator").
			WithLabel("selector").
			WithHints("nearest player", "all players", "random player", "self", "all entities", "initiator").
			Link(prepend(start, next)...),
		g.BareString().Describe("player:player name").Link(next...),
		g.QuotedString().Describe("player:player name").Link(next...),
	}
}

// selectorFilters returns the filter keys accepted inside "[...]". Each
// filter is followed by "," back to the keys or "]" into next.
func (g *Graph) selectorFilters(next []Node) []Node {
	coord := g.Enum("x", "y", "z").Describe("filter:x position;y position;z position")
	volume := g.Enum("dx", "dy", "dz").Describe("filter:x extent;y extent;z extent")
	radius := g.Enum("r", "rm").Describe("filter:max radius;min radius")
	rotX := g.Enum("rx", "rxm").Describe("filter:max x rotation;min x rotation")
	rotY := g.Enum("ry", "rym").Describe("filter:max y rotation;min y rotation")
	level := g.Enum("l", "lm").Describe("filter:max level;min level")
	count := g.Char("c").Describe("filter:count")
	typ := g.Char("type").Describe("filter:entity type")
	mode := g.Char("m").Describe("filter:game mode")
	text := g.Enum("tag", "name", "family").Describe("filter:tag;name;family")
	scores := g.Char("scores").Describe("filter:scores")
	perm := g.Char("haspermission").Describe("filter:permissions")
	item := g.Char("hasitem").Describe("filter:items")

	keys := []Node{coord, volume, radius, rotX, rotY, level, count, typ, mode, text, scores, perm, item}
	closers := []Node{
		g.Keyword(",").WithLabel("separator").Link(keys...),
		g.Keyword("]").WithLabel("filters").Link(next...),
	}
	assign := func() Node { return g.Keyword("=").WithLabel("assign") }
	negate := func() Node { return g.Keyword("!").Describe("not:negate") }
	name := func(then []Node) []Node {
		return []Node{
			g.BareString().Describe("value:name").Link(then...),
			g.QuotedString().Describe("value:name").Link(then...),
		}
	}

	coord.Link(assign().Link(
		g.RelativeOffset().Describe("value:relative position").Link(closers...),
		g.Float().Describe("value:position").Link(closers...)))
	for _, key := range []Node{volume, radius, rotX, rotY} {
		key.Link(assign().Link(g.Float().Describe("value:number").Link(closers...)))
	}
	for _, key := range []Node{level, count} {
		key.Link(assign().Link(g.Int().Describe("value:integer").Link(closers...)))
	}

	typ.Link(assign().Link(
		negate().Link(g.AnyString().Describe("value:entity type").Link(closers...)),
		g.AnyString().Describe("value:entity type").Link(closers...)))

	mode.Link(assign().Link(
		negate().Link(g.Enum(gameModes...).WithLabel("value").Link(closers...)),
		g.Enum(gameModes...).WithLabel("value").Link(closers...)))

	text.Link(assign().Link(append([]Node{negate().Link(name(closers)...)}, name(closers)...)...))

	scores.Link(assign().Link(g.Keyword("{").WithLabel("scores").Link(g.scoreEntries(closers)...)))
	perm.Link(assign().Link(g.Keyword("{").WithLabel("permissions").Link(g.permissionEntries(closers))))
	item.Link(assign().Link(
		g.Keyword("[").WithLabel("items").Link(g.itemList(closers)),
		g.itemBlock(closers),
	))

	return keys
}

func (g *Graph) scoreEntries(closers []Node) []Node {
	objective := []Node{
		g.BareString().Describe("objective:objective name"),
		g.QuotedString().Describe("objective:objective name"),
	}
	more := g.Keyword(",").WithLabel("separator").Link(objective...)
	done := g.Keyword("}").WithLabel("scores").Link(closers...)
	value := g.Range(more, done)
	for _, o := range objective {
		o.Link(g.Keyword("=").WithLabel("assign").Link(value...))
	}
	return objective
}

func (g *Graph) permissionEntries(closers []Node) Node {
	permission := g.Enum("camera", "movement").Describe("permission:camera;movement")
	more := g.Keyword(",").WithLabel("separator").Link(permission)
	done := g.Keyword("}").WithLabel("permissions").Link(closers...)
	permission.Link(g.Keyword("=").WithLabel("assign").Link(
		g.Enum("enabled", "disabled").WithLabel("state").Link(more, done)))
	return permission
}

// itemBlock is "{item=...,data=...}", continuing into then after "}".
func (g *Graph) itemBlock(then []Node) Node {
	item := g.Char("item").Describe("field:item id")
	data := g.Char("data").Describe("field:item data")
	quantity := g.Char("quantity").Describe("field:quantity range")
	location := g.Char("location").Describe("field:slot type")
	slot := g.Char("slot").Describe("field:slot range")
	fields := []Node{item, data, quantity, location, slot}

	closers := []Node{
		g.Keyword(",").WithLabel("separator").Link(fields...),
		g.Keyword("}").WithLabel("item").Link(then...),
	}
	assign := func() Node { return g.Keyword("=").WithLabel("assign") }
	item.Link(assign().Link(g.AnyString().Describe("value:item id").Link(closers...)))
	data.Link(assign().Link(g.Int().Describe("value:data value").Link(closers...)))
	quantity.Link(assign().Link(g.Range(closers...)...))
	location.Link(assign().Link(g.Enum(itemLocations...).WithLabel("value").Link(closers...)))
	slot.Link(assign().Link(g.Range(closers...)...))

	return g.Keyword("{").WithLabel("item").Link(fields...)
}

// itemList is "{...},{...}]" following an opening "[".
func (g *Graph) itemList(closers []Node) Node {
	more := g.Keyword(",").WithLabel("separator")
	done := g.Keyword("]").WithLabel("items").Link(closers...)
	block := g.itemBlock([]Node{more, done})
	more.Link(block)
	return block
}
