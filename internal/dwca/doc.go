// Package dwca reads Darwin Core occurrence datasets and turns their
// reference fields into audio URLs.
//
// The package handles three steps:
//
//  1. Reading a tab-separated occurrence file into records
//  2. Classifying each reference as a direct audio URL or a metadata pointer
//  3. Resolving metadata pointers to the audio URL they embed
//
// # Reading a Dataset
//
//	ds, err := dwca.OpenDataset("occurrence.txt")
//	if err != nil {
//	    log.Fatal(err) // matches model.ErrInputUnreadable
//	}
//	defer ds.Close()
//
// # Extracting Candidates
//
// The Extractor walks every record and every reference field:
//
//	ex := dwca.NewExtractor(dwca.NewResolver(client), "scientificName",
//	    []string{"references", "associatedMedia"})
//	candidates, err := ex.Extract(ctx, ds)
//
// # Metadata Documents
//
// A reference without an audio extension is fetched as XML. The first
// associatedMedia element in the Darwin Core terms namespace
// (http://rs.tdwg.org/dwc/terms/) carries the audio URL:
//
//	<record xmlns:dwc="http://rs.tdwg.org/dwc/terms/">
//	  <dwc:associatedMedia>http://example.org/audio/42.wav</dwc:associatedMedia>
//	</record>
//
// Resolution failures never abort extraction; they are reported through
// Extractor.OnResolveError and the reference is dropped.
package dwca
