// Package value models JSON-shaped data as a closed set of variants: null,
// bool, number, string, array and object.
//
// Request bodies of unknown shape are converted into a Value once, either
// from raw bytes with Parse (backed by fastjson) or from already decoded data
// with FromAny. Recursive consumers such as the threat scanner and the deep
// object sanitizer then switch on Kind instead of relying on runtime type
// assertions over interface{} trees.
//
// Objects keep their members in document order, which makes traversal
// output (finding paths, re-encoded JSON) deterministic.
//
// # Usage
//
//	v, err := value.Parse(body)
//	if err != nil {
//		return err
//	}
//	for _, m := range v.Members() {
//		fmt.Println(m.Key, m.Value.Kind())
//	}
//
// Values are immutable after construction and safe for concurrent reads.
package value
