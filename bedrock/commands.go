// Package bedrock defines the grammar for a subset of Minecraft Bedrock
// Edition commands, built from the grammar package combinators.
package bedrock

import "github.com/dhamidi/cmdtree/grammar"

var gameModes = []string{"survival", "s", "0", "creative", "c", "1", "adventure", "a", "2", "spectator", "default", "d"}

// Commands returns a fresh grammar holding every supported command.
// "execute" re-enters the whole command list after its selector and
// position, so the graph is cyclic.
func Commands() *grammar.Graph {
	g := grammar.New()
	end := g.End()

	execute := g.Char("execute").Describe("command:run a command as other entities")
	commands := []grammar.Node{
		ability(g, end),
		alwaysday(g, end),
		camera(g, end),
		gamemode(g, end),
		kill(g, end),
		say(g),
		tag(g, end),
		teleport(g, end),
		weather(g, end),
		xp(g, end),
		execute,
	}
	execute.Link(g.Selector(g.Position(commands...)...)...)
	g.Root().Link(commands...)
	return g
}

// Names lists the top-level command names in the order they are tried.
func Names() []string {
	var names []string
	for _, n := range Commands().Root().Children() {
		names = append(names, n.Words()...)
	}
	return names
}

func boolean(g *grammar.Graph, then ...grammar.Node) grammar.Node {
	return g.Enum("true", "false").WithLabel("value").Link(then...)
}

func name(g *grammar.Graph, label string, then ...grammar.Node) []grammar.Node {
	return []grammar.Node{
		g.BareString().WithLabel(label).Link(then...),
		g.QuotedString().WithLabel(label).Link(then...),
	}
}

func ability(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Char("ability").Describe("command:grant or revoke an ability").Link(
		g.Selector(
			g.Enum("worldbuilder", "mayfly", "mute").
				Describe("ability:build in adventure mode;fly;cannot chat").
				Link(boolean(g, end), end),
		)...,
	)
}

func alwaysday(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Enum("alwaysday", "daylock").
		Describe("command:lock the day-night cycle").
		Link(boolean(g, end), end)
}

func camera(g *grammar.Graph, end grammar.Node) grammar.Node {
	color := g.Char("color").Describe("option:fade color").Link(
		g.Int().Describe("red:0-255").Link(
			g.Int().Describe("green:0-255").Link(
				g.Int().Describe("blue:0-255").Link(end))))
	timing := g.Char("time").Describe("option:fade timing").Link(
		g.Float().Describe("in:fade in seconds").Link(
			g.Float().Describe("hold:hold seconds").Link(
				g.Float().Describe("out:fade out seconds").Link(color, end))))

	return g.Char("camera").Describe("command:control player cameras").Link(
		g.Selector(
			g.Char("clear").Describe("action:remove camera effects").Link(end),
			g.Char("fade").Describe("action:fade the screen").Link(timing, color, end),
		)...,
	)
}

func gamemode(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Char("gamemode").Describe("command:set a game mode").Link(
		g.Enum(gameModes...).WithLabel("mode").Link(append(g.Selector(end), end)...),
	)
}

func kill(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Char("kill").Describe("command:kill entities").Link(append(g.Selector(end), end)...)
}

func say(g *grammar.Graph) grammar.Node {
	return g.Char("say").Describe("command:broadcast a message").Link(
		g.AnyMsg().WithLabel("message"),
	)
}

func tag(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Char("tag").Describe("command:manage entity tags").Link(
		g.Selector(
			g.Char("add").Describe("action:add a tag").Link(name(g, "tag", end)...),
			g.Char("remove").Describe("action:remove a tag").Link(name(g, "tag", end)...),
			g.Char("list").Describe("action:list tags").Link(end),
		)...,
	)
}

// teleport accepts "tp <position>", "tp <victim> <position>" and
// "tp <victim> <destination>".
func teleport(g *grammar.Graph, end grammar.Node) grammar.Node {
	destination := append(g.Position(end), g.Selector(end)...)
	alternatives := append(g.Position(end), g.Selector(append(destination, end)...)...)
	return g.Enum("tp", "teleport").Describe("command:teleport entities").Link(alternatives...)
}

func weather(g *grammar.Graph, end grammar.Node) grammar.Node {
	return g.Char("weather").Describe("command:set the weather").Link(
		g.Enum("clear", "rain", "thunder").WithLabel("weather").Link(
			g.Int().Describe("duration:ticks").Link(end),
			end,
		),
		g.Char("query").Describe("weather:show the weather").Link(end),
	)
}

func xp(g *grammar.Graph, end grammar.Node) grammar.Node {
	target := append(g.Selector(end), end)
	return g.Char("xp").Describe("command:add experience").Link(
		g.Int("L").Describe("levels:experience levels").Link(target...),
		g.Int().Describe("amount:experience points").Link(target...),
	)
}
