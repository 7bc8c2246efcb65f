package mcp

// Tool names exposed to clients.
const (
	toolSaveItem         = "save_item"
	toolUpdateItem       = "update_item"
	toolAttachFile       = "attach_file"
	toolGetFulltext      = "get_fulltext"
	toolGetItem          = "get_item"
	toolSearchLibrary    = "search_library"
	toolLibraryStats     = "library_stats"
	toolListCollections  = "list_collections"
	toolCreateCollection = "create_collection"
	toolListTags         = "list_tags"
)

var toolDescriptions = map[string]string{
	toolSaveItem: "Save a new item to the Zotero library. Accepts a friendly " +
		"type name (article, book, chapter, webpage, ...), bibliographic " +
		"fields, tags and an optional target collection. When pdf_url or " +
		"snapshot_url is given the file is fetched and attached to the new " +
		"item; an attachment failure does not roll back the created item.",
	toolUpdateItem: "Update an existing item by key. Scalar fields (title, " +
		"date, abstract, extra) overwrite when given. tags/collections " +
		"replace the whole set; add_tags/remove_tags and add_collections/" +
		"remove_collections merge against the current set. Version conflicts " +
		"are reported distinctly so the caller can re-read and retry.",
	toolAttachFile: "Attach a file to an existing item by key. pdf_url fetches " +
		"and stores a PDF (pdf_url wins if both are given); snapshot_url " +
		"stores an HTML snapshot. If the upload fails after the attachment " +
		"record was created, the orphaned attachment key is returned.",
	toolGetFulltext: "Get the extracted full text for an item. For a parent " +
		"item, its attachments are probed PDF-first; 'not indexed yet' is a " +
		"normal answer, not an error.",
	toolGetItem:       "Read one item by key: type, title, date, url, abstract, tags, version.",
	toolSearchLibrary: "Quick-search the library. qmode 'titleCreatorYear' (default) or 'everything'.",
	toolLibraryStats: "Summarize the library: total item count, collections, " +
		"top tags by usage, and the most recently modified item.",
	toolListCollections:  "List all collections with their keys, parents, and item counts.",
	toolCreateCollection: "Create a collection. name is required; parent_key nests it.",
	toolListTags:         "List tags by descending usage count.",
}
