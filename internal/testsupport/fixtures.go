package testsupport

// ArtistsCSV is a minimal authority record export.
const ArtistsCSV = `authorizedFormOfName,subjectAccessPoints,datesOfExistence
ArtistName,Residency Program,1970-
Jane Doe,Exhibition|Residency Program,
Maria Lopez,Ways of Working Spring 2019,
`

// CyclesXML is a minimal SKOS export of exhibition-cycle subjects.
const CyclesXML = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:skos="http://www.w3.org/2004/02/skos/core#">
  <skos:Concept rdf:about="http://atom.example/cycle-22-1">
    <skos:prefLabel xml:lang="en">International Artist-in-Residence 22.1</skos:prefLabel>
    <skos:altLabel xml:lang="en">IAIR 22.1</skos:altLabel>
  </skos:Concept>
  <skos:Concept rdf:about="http://atom.example/ww-19-2">
    <skos:prefLabel xml:lang="en">Ways of Working Spring 2019</skos:prefLabel>
    <skos:altLabel xml:lang="en">WW 19.2</skos:altLabel>
    <skos:altLabel xml:lang="en">Ways of Working</skos:altLabel>
  </skos:Concept>
  <skos:Concept rdf:about="http://atom.example/education">
    <skos:prefLabel xml:lang="en">Education</skos:prefLabel>
    <skos:altLabel xml:lang="en">EDU</skos:altLabel>
  </skos:Concept>
</rdf:RDF>
`
