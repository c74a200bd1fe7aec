package metrics

// Metric names
const (
	MetricNameCoinsGenerated     = "lootforge_coins_generated_total"
	MetricNameCoinFactor         = "lootforge_coin_factor"
	MetricNameTreasureDraws      = "lootforge_treasure_draws_total"
	MetricNameCoinsConverted     = "lootforge_coins_converted_total"
	MetricNameItemsDeteriorated  = "lootforge_items_deteriorated_total"
	MetricNameLootGenerations    = "lootforge_loot_generations_total"
	MetricNameLookupMisses       = "lootforge_lookup_misses_total"
	MetricNameGenerationDuration = "lootforge_generation_duration_seconds"
)

// Metric help text
const (
	HelpTextCoinsGenerated     = "Total number of coins generated, by denomination"
	HelpTextCoinFactor         = "Distribution of the factor applied to coin rolls"
	HelpTextTreasureDraws      = "Total number of treasure table draws produced by coin conversion"
	HelpTextCoinsConverted     = "Total number of coins spent on treasure draws, by denomination"
	HelpTextItemsDeteriorated  = "Total number of item units broken, damaged or destroyed"
	HelpTextLootGenerations    = "Total number of loot generation runs, by result"
	HelpTextLookupMisses       = "Total number of item or table lookups that found nothing"
	HelpTextGenerationDuration = "Loot generation latency in seconds"
)

// Label names
const (
	LabelDenomination = "denomination"
	LabelTable        = "table"
	LabelOutcome      = "outcome"
	LabelResult       = "result"
	LabelKind         = "kind"
)

// Label values
const (
	OutcomeBroken    = "broken"
	OutcomeDamaged   = "damaged"
	OutcomeDestroyed = "destroyed"

	ResultGenerated = "generated"
	ResultSkipped   = "skipped"

	KindItem  = "item"
	KindTable = "table"
)
