// Package x3ml is a reference mapping engine for a subset of the X3ML
// language.
//
// A definition lists namespaces and mappings. Each mapping selects domain
// nodes from the source document with XPath, generates an instance for each
// and follows its links to range nodes:
//
//	<x3ml>
//	  <namespaces>
//	    <namespace prefix="crm" uri="http://www.cidoc-crm.org/cidoc-crm/"/>
//	  </namespaces>
//	  <mappings>
//	    <mapping>
//	      <domain>
//	        <source_node>//person</source_node>
//	        <target_node>
//	          <entity>
//	            <type>crm:E21_Person</type>
//	            <instance_generator name="UUID"/>
//	          </entity>
//	        </target_node>
//	      </domain>
//	      <link>...</link>
//	    </mapping>
//	  </mappings>
//	</x3ml>
//
// Instance identifiers and labels come from a generator policy loaded with
// NewPolicyFactory. Factory and PolicyFactory satisfy the collaborator
// interfaces of package mapper.
package x3ml
