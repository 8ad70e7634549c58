package world

// Block states used by the built-in terrain, biomes and rules.
var (
	Air         = BlockState{Name: "minecraft:air"}
	Stone       = BlockState{Name: "minecraft:stone"}
	Granite     = BlockState{Name: "minecraft:granite"}
	Diorite     = BlockState{Name: "minecraft:diorite"}
	Andesite    = BlockState{Name: "minecraft:andesite"}
	Deepslate   = BlockState{Name: "minecraft:deepslate"}
	Bedrock     = BlockState{Name: "minecraft:bedrock"}
	Dirt        = BlockState{Name: "minecraft:dirt"}
	Grass       = BlockState{Name: "minecraft:grass_block"}
	ShortGrass  = BlockState{Name: "minecraft:short_grass"}
	Gravel      = BlockState{Name: "minecraft:gravel"}
	Sand        = BlockState{Name: "minecraft:sand"}
	Water       = BlockState{Name: "minecraft:water"}
	Lava        = BlockState{Name: "minecraft:lava"}
	CoalOre     = BlockState{Name: "minecraft:coal_ore"}
	IronOre     = BlockState{Name: "minecraft:iron_ore"}
	GoldOre     = BlockState{Name: "minecraft:gold_ore"}
	LapisOre    = BlockState{Name: "minecraft:lapis_ore"}
	DiamondOre  = BlockState{Name: "minecraft:diamond_ore"}
	RedstoneOre = BlockState{Name: "minecraft:redstone_ore"}
	EmeraldOre  = BlockState{Name: "minecraft:emerald_ore"}
)

var (
	stoneLike = NewStateSet(Stone, Granite, Diorite, Andesite, Deepslate)
	liquids   = NewStateSet(Water, Lava)
	plants    = NewStateSet(ShortGrass, BlockState{Name: "minecraft:tall_grass"}, BlockState{Name: "minecraft:fern"})
)

// StoneLike checks if the state is one of the natural stone variants ores are usually placed in.
func StoneLike(s BlockState) bool {
	return stoneLike.Contains(s)
}

// Liquid checks if the state is a liquid.
func Liquid(s BlockState) bool {
	return liquids.Contains(s)
}

// Vegetation checks if the state is a plant that does not support blocks placed on top of it.
func Vegetation(s BlockState) bool {
	return plants.Contains(s)
}

// Solid checks if the state is neither air, a liquid nor vegetation.
func Solid(s BlockState) bool {
	return s != Air && !Liquid(s) && !Vegetation(s)
}
