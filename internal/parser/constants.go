package parser

const (
	// ConstructorPrefix starts the name of every package function recognized as a constructor
	ConstructorPrefix = "New"

	// Module annotation parameters
	NameParam         = "Name"
	GroupPackageParam = "GroupPackage"

	// Data object annotation parameters
	GenerateConverterParam = "GenerateConverter"
	InheritConverterParam  = "InheritConverter"
	AbstractParam          = "Abstract"
)
