package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyTwinDBType string = "TWIN_DB_TYPE"
	EnvKeyTwinDbPath string = "TWIN_DB_PATH"

	EnvKeyTwinHttpHostPort string = "TWIN_HTTP_HOST_PORT"

	EnvKeyTwinDefaultRate  string = "TWIN_DEFAULT_RATE"
	EnvKeyTwinDefaultBurst string = "TWIN_DEFAULT_BURST"

	EnvKeyTwinMaxSubtreeSize string = "TWIN_MAX_SUBTREE_SIZE"
	EnvKeyTwinMaxTreeResults string = "TWIN_MAX_TREE_RESULTS"

	LoggerNameTwinCore      string = "twin_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerFieldTwinCategory string = "category"

	LoggerCategoryTwinStore     string = "store"
	LoggerCategoryTwinHierarchy string = "hierarchy"
	LoggerCategoryTwinState     string = "state"
	LoggerCategoryTwinQuery     string = "query"
)
