package models

// AllergenStatus replaces the stored 0/1 flag inside the process. The wire
// convention is inverted (0 = allergic/present, 1 = safe/absent) and easy
// to misread, so the mapping lives only in Flags/AllergenSetFromFlags.
type AllergenStatus int

const (
	Allergic AllergenStatus = iota
	NotAllergic
)

const (
	AllergenNuts    = "nuts"
	AllergenDairy   = "dairy"
	AllergenSeafood = "seafood"
)

// AllergenSet covers the three tracked allergens, used both for a user's
// declared allergies and for a food's inferred allergen content.
type AllergenSet struct {
	Nuts    AllergenStatus
	Dairy   AllergenStatus
	Seafood AllergenStatus
}

func statusFromFlag(flag int) AllergenStatus {
	if flag == 0 {
		return Allergic
	}
	return NotAllergic
}

func flagFromStatus(s AllergenStatus) int {
	if s == Allergic {
		return 0
	}
	return 1
}

// AllergenSetFromFlags decodes the persisted/wire map. Missing keys decode
// as NotAllergic.
func AllergenSetFromFlags(flags map[string]int) AllergenSet {
	get := func(key string) AllergenStatus {
		if v, ok := flags[key]; ok {
			return statusFromFlag(v)
		}
		return NotAllergic
	}
	return AllergenSet{
		Nuts:    get(AllergenNuts),
		Dairy:   get(AllergenDairy),
		Seafood: get(AllergenSeafood),
	}
}

// Flags encodes the set back to the wire convention.
func (s AllergenSet) Flags() map[string]int {
	return map[string]int{
		AllergenNuts:    flagFromStatus(s.Nuts),
		AllergenDairy:   flagFromStatus(s.Dairy),
		AllergenSeafood: flagFromStatus(s.Seafood),
	}
}

// Conflicts returns the allergen keys where the user is allergic and the
// food contains the allergen. An empty result means "no conflicts", it is
// not an error.
func (s AllergenSet) Conflicts(food AllergenSet) []string {
	var out []string
	if s.Nuts == Allergic && food.Nuts == Allergic {
		out = append(out, AllergenNuts)
	}
	if s.Dairy == Allergic && food.Dairy == Allergic {
		out = append(out, AllergenDairy)
	}
	if s.Seafood == Allergic && food.Seafood == Allergic {
		out = append(out, AllergenSeafood)
	}
	return out
}
