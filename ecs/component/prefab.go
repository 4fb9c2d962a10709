package component

// PrefabRef records the prefab an entity was built from.
type PrefabRef struct {
	Path string
}

var PrefabRefComponent = NewComponent[PrefabRef]()
