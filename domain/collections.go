package domain

const (
	CollectionUser = "system_auth_users"
)

const (
	CollectionAppEngineConfigs = "sound_app_configs_engine"
)

const (
	CollectionSoundGeneration = "sound_entity_generation"
)
const (
	CollectionSoundLineage = "sound_entity_lineage"
)
const (
	CollectionSoundLineageNode = "sound_entity_lineage_node"
)
